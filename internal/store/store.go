package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

// ErrNotFound is returned when an experiment id is unknown to the backend.
var ErrNotFound = errors.New("experiment not found")

// Store persists completed experiments. RecentExperiments returns light
// records: request echo, counts and averages, without the per-run results.
type Store interface {
	SaveExperiment(ctx context.Context, record models.ExperimentRecord) error
	GetExperiment(ctx context.Context, id string) (*models.ExperimentRecord, error)
	RecentExperiments(ctx context.Context, limit int) ([]models.ExperimentRecord, error)
	Close()
}

const defaultRecentLimit = 10

type Config struct {
	// Backend selects the implementation: postgres, redis, or memory.
	// "disabled" and "" behave like memory.
	Backend  string
	Postgres PostgresConfig
	Redis    RedisConfig
}

// New builds the configured backend. The memory backend never fails.
func New(ctx context.Context, cfg Config, logger *zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case "postgres":
		return NewPostgresStore(ctx, cfg.Postgres, logger)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis, logger)
	case "memory", "disabled", "":
		return NewMemoryStore(logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	return limit
}
