// Package middleware carries the container-wide filters and the JSON error
// envelope shared by every route.
package middleware

import (
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the envelope every non-2xx response carries.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Logger logs one line per request with method, path, status and duration.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()

	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request handled")
}

// RecoverPanic turns a panicking handler into a 500 with the standard
// envelope instead of tearing down the connection.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Msg("handler panicked")
			HandleError(resp, nil, http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}

// HandleError writes the error envelope. A nil err keeps the body generic.
func HandleError(resp *restful.Response, err error, status int) {
	message := http.StatusText(status)
	if err != nil {
		message = err.Error()
	}

	writeErr := resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error:  message,
		Status: status,
	})
	if writeErr != nil {
		log.Error().Err(writeErr).Msg("failed to write error response")
	}
}
