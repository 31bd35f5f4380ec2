package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

// OrchestratorConfig paces sequential generation. The zero value picks the
// production defaults; tests pass tiny delays.
type OrchestratorConfig struct {
	// RequestDelay sits between consecutive generation calls.
	RequestDelay time.Duration
	// FailureDelay replaces RequestDelay after a call that panicked.
	FailureDelay time.Duration
}

func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		RequestDelay: 1000 * time.Millisecond,
		FailureDelay: 3000 * time.Millisecond,
	}
}

// Orchestrator walks parameter tuples strictly in order, one generation call
// at a time, and shields the run from panicking generator implementations.
type Orchestrator struct {
	generator Generator
	cfg       OrchestratorConfig
	logger    *zerolog.Logger
}

func NewOrchestrator(generator Generator, cfg OrchestratorConfig, logger *zerolog.Logger) *Orchestrator {
	if cfg == (OrchestratorConfig{}) {
		cfg = DefaultOrchestratorConfig()
	}
	return &Orchestrator{
		generator: generator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run generates one result per tuple, preserving tuple order in the output.
// A panicked call skips only its own tuple. Attempted counts every tuple,
// Produced only those that yielded a result.
func (o *Orchestrator) Run(ctx context.Context, prompt string, params []models.GenerationParameters) models.GenerationOutcome {
	outcome := models.GenerationOutcome{
		Results:   make([]models.GeneratedResult, 0, len(params)),
		Attempted: len(params),
	}

	panicked := false
	for i, p := range params {
		if i > 0 {
			delay := o.cfg.RequestDelay
			if panicked {
				delay = o.cfg.FailureDelay
			}
			if !sleepCtx(ctx, delay) {
				o.logger.Warn().
					Int("completed", i).
					Int("planned", len(params)).
					Msg("run interrupted between requests")
				break
			}
		}

		result, ok := o.generateSafely(ctx, prompt, p, i)
		panicked = !ok
		if !ok {
			continue
		}
		outcome.Results = append(outcome.Results, result)
	}

	outcome.Produced = len(outcome.Results)
	return outcome
}

func (o *Orchestrator) generateSafely(ctx context.Context, prompt string, params models.GenerationParameters, index int) (result models.GeneratedResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().
				Int("index", index).
				Str("panic", fmt.Sprint(r)).
				Msg("generation panicked, skipping tuple")
			ok = false
		}
	}()
	return o.generator.Generate(ctx, prompt, params), true
}

func sleepCtx(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}
