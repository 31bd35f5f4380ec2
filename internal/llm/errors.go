package llm

import (
	"errors"
	"fmt"
)

// transientStatuses are provider replies worth retrying on another model
// after a backoff. Everything else is treated as permanent.
var transientStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
}

// ProviderError is a failed provider call with its HTTP-level status code.
// A zero StatusCode means the failure never reached the provider or carried
// no usable status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is a temporary condition the caller
// may back off from and try again elsewhere.
func (e *ProviderError) Transient() bool {
	return transientStatuses[e.StatusCode]
}

// IsTransient reports whether err wraps a transient provider failure.
func IsTransient(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Transient()
	}
	return false
}
