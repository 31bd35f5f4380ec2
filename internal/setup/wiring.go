package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/aggregator"
	"github.com/promptlab/promptlab/internal/config"
	"github.com/promptlab/promptlab/internal/experiment"
	"github.com/promptlab/promptlab/internal/generation"
	"github.com/promptlab/promptlab/internal/llm"
	"github.com/promptlab/promptlab/internal/llm/bedrock"
	"github.com/promptlab/promptlab/internal/llm/gemini"
	"github.com/promptlab/promptlab/internal/llm/gpt"
	"github.com/promptlab/promptlab/internal/sampling"
	"github.com/promptlab/promptlab/internal/scoring"
	"github.com/promptlab/promptlab/internal/store"
)

// Dependencies is the wired object graph shared by the api, batch, and mcp
// entry points.
type Dependencies struct {
	Service *experiment.Service
	Store   store.Store
	Logger  *zerolog.Logger
}

// Wire builds every component from the environment config and the models
// config. The env provider overrides the yaml provider when both are set.
func Wire(ctx context.Context, cfg *config.Config, models *config.ModelsConfig, logger *zerolog.Logger) (*Dependencies, error) {
	provider := models.Provider
	if cfg.Provider != "" {
		provider = cfg.Provider
	}

	mock := generation.NewMockGenerator(nil, logger)

	var generator generation.Generator
	if provider == "mock" {
		generator = mock
		logger.Info().Msg("using the mock generator, no provider calls will be made")
	} else {
		client, err := createLLMClient(ctx, provider, cfg, models)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
		}

		requestTimeout := cfg.RequestTimeout
		if requestTimeout <= 0 {
			requestTimeout = time.Duration(models.RequestTimeout) * time.Millisecond
		}

		generator = generation.NewRemoteGenerator(client, generation.RemoteConfig{
			FallbackModels: models.FallbackModels,
			Backoff: generation.BackoffConfig{
				BaseDelay: time.Duration(models.Backoff.BaseDelayMs) * time.Millisecond,
				Factor:    models.Backoff.Factor,
				MaxDelay:  time.Duration(models.Backoff.MaxDelayMs) * time.Millisecond,
			},
			RequestTimeout: requestTimeout,
		}, mock, logger)
		logger.Info().
			Str("provider", provider).
			Str("defaultModel", models.DefaultModel).
			Dur("requestTimeout", requestTimeout).
			Msg("remote generator ready")
	}

	orchestrator := generation.NewOrchestrator(generator, generation.OrchestratorConfig{
		RequestDelay: time.Duration(models.Pacing.RequestDelayMs) * time.Millisecond,
		FailureDelay: time.Duration(models.Pacing.FailureDelayMs) * time.Millisecond,
	}, logger)

	resultStore, err := store.New(ctx, store.Config{
		Backend: cfg.StoreBackend,
		Postgres: store.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSLMode,
		},
		Redis: store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.StoreBackend, err)
	}

	service := experiment.NewService(
		sampling.NewSampler(nil),
		orchestrator,
		scoring.NewEngine(logger),
		aggregator.NewAggregator(logger),
		resultStore,
		logger,
	)

	return &Dependencies{
		Service: service,
		Store:   resultStore,
		Logger:  logger,
	}, nil
}

func createLLMClient(ctx context.Context, provider string, cfg *config.Config, models *config.ModelsConfig) (llm.Client, error) {
	switch provider {
	case "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, models.DefaultModel)
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return nil, fmt.Errorf("unknown provider: %q", provider)
	}
}
