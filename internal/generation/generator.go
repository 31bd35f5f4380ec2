package generation

import (
	"context"

	"github.com/promptlab/promptlab/internal/models"
)

// Generator produces content for a prompt under one parameter tuple. It
// never returns an error: implementations must resolve every call with a
// result, degrading to whatever fallback they own when the primary path
// fails.
type Generator interface {
	Generate(ctx context.Context, prompt string, params models.GenerationParameters) models.GeneratedResult
}
