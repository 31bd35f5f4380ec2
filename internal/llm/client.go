package llm

import (
	"context"
)

// Client is an interface for invoking generative text models.
// This allows mocking in tests without making real API calls.
type Client interface {
	GenerateText(ctx context.Context, request Request) (*Response, error)
}

// Request carries everything one generation attempt needs. ModelID is set
// per request because callers walk a fallback ladder of models over the
// same client.
type Request struct {
	Prompt      string
	System      string
	ModelID     string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

type Response struct {
	Content    string
	TokensUsed int
	StopReason string
}
