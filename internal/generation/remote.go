package generation

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/llm"
	"github.com/promptlab/promptlab/internal/models"
)

// preamble is sent as the system instruction with every remote attempt.
const preamble = "You are a careful writing assistant. Respond to the request below as directly and completely as you can."

var errEmptyContent = errors.New("provider returned empty content")

// DefaultFallbackModels is the ladder tried after the requested model.
func DefaultFallbackModels() []string {
	return []string{"gemini-2.0-flash", "gemini-2.0-pro", "gemini-1.5-flash"}
}

// BackoffConfig shapes the delay before moving past a transient failure.
type BackoffConfig struct {
	BaseDelay time.Duration
	Factor    float64
	MaxDelay  time.Duration
}

func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		BaseDelay: 1000 * time.Millisecond,
		Factor:    2,
		MaxDelay:  5000 * time.Millisecond,
	}
}

func (b BackoffConfig) delayFor(attempt int) time.Duration {
	delay := float64(b.BaseDelay) * math.Pow(b.Factor, float64(attempt))
	if delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}
	return time.Duration(delay)
}

type fallbackAction int

const (
	retryNextModel fallbackAction = iota
	fallbackToMock
)

// decide is the whole fallback policy for one failed attempt: move down the
// model ladder on transient failures and empty content, degrade to mock on
// permanent failures or once the ladder is exhausted. Nothing ever
// propagates to the caller as an error.
func decide(attempt int, modelCount int, err error) fallbackAction {
	if attempt+1 >= modelCount {
		return fallbackToMock
	}
	if errors.Is(err, errEmptyContent) || llm.IsTransient(err) {
		return retryNextModel
	}
	return fallbackToMock
}

// RemoteConfig tunes the remote generation path.
type RemoteConfig struct {
	// FallbackModels are tried in order after the requested model.
	FallbackModels []string
	Backoff        BackoffConfig
	// RequestTimeout bounds each individual provider attempt.
	RequestTimeout time.Duration
}

// RemoteGenerator calls a provider through an ordered ladder of models and
// absorbs every failure by degrading to the mock generator.
type RemoteGenerator struct {
	client         llm.Client
	fallbackModels []string
	backoff        BackoffConfig
	requestTimeout time.Duration
	mock           *MockGenerator
	logger         *zerolog.Logger
}

func NewRemoteGenerator(client llm.Client, cfg RemoteConfig, mock *MockGenerator, logger *zerolog.Logger) *RemoteGenerator {
	if len(cfg.FallbackModels) == 0 {
		cfg.FallbackModels = DefaultFallbackModels()
	}
	if cfg.Backoff == (BackoffConfig{}) {
		cfg.Backoff = DefaultBackoffConfig()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return &RemoteGenerator{
		client:         client,
		fallbackModels: cfg.FallbackModels,
		backoff:        cfg.Backoff,
		requestTimeout: cfg.RequestTimeout,
		mock:           mock,
		logger:         logger,
	}
}

func (g *RemoteGenerator) Generate(ctx context.Context, prompt string, params models.GenerationParameters) models.GeneratedResult {
	ladder := g.modelLadder(params.ModelID)

	for attempt, model := range ladder {
		start := time.Now()
		response, err := g.invoke(ctx, prompt, model, params)
		if err == nil {
			return models.GeneratedResult{
				Content:          response.Content,
				TokensUsed:       tokensOr(response.TokensUsed, response.Content),
				GenerationTimeMs: time.Since(start).Milliseconds(),
				Parameters:       params,
				ModelID:          model,
				Source:           models.SourceRemote,
			}
		}

		g.logger.Warn().
			Err(err).
			Str("model", model).
			Int("attempt", attempt).
			Msg("generation attempt failed")

		if decide(attempt, len(ladder), err) == fallbackToMock {
			break
		}
		if llm.IsTransient(err) && !g.waitBackoff(ctx, attempt) {
			break
		}
		// Empty content moves to the next model without any delay.
	}

	g.logger.Info().
		Str("requested_model", params.ModelID).
		Msg("remote generation exhausted, degrading to mock")
	return g.mock.Generate(ctx, prompt, params)
}

// modelLadder is the ordered model list for one call: the requested model
// first, then the configured fallbacks, deduplicated so no model is ever
// retried back to back.
func (g *RemoteGenerator) modelLadder(requested string) []string {
	candidates := make([]string, 0, len(g.fallbackModels)+1)
	candidates = append(candidates, requested)
	candidates = append(candidates, g.fallbackModels...)

	seen := make(map[string]bool, len(candidates))
	ladder := make([]string, 0, len(candidates))
	for _, model := range candidates {
		if model == "" || seen[model] {
			continue
		}
		seen[model] = true
		ladder = append(ladder, model)
	}
	return ladder
}

func (g *RemoteGenerator) invoke(ctx context.Context, prompt string, model string, params models.GenerationParameters) (*llm.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	response, err := g.client.GenerateText(callCtx, llm.Request{
		Prompt:      prompt,
		System:      preamble,
		ModelID:     model,
		Temperature: params.Temperature,
		TopP:        params.TopP,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(response.Content) == "" {
		return nil, errEmptyContent
	}
	return response, nil
}

func (g *RemoteGenerator) waitBackoff(ctx context.Context, attempt int) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(g.backoff.delayFor(attempt)):
		return true
	}
}

// tokensOr falls back to a length estimate when the provider reported no
// usage numbers.
func tokensOr(reported int, content string) int {
	if reported > 0 {
		return reported
	}
	return len(content) / 4
}
