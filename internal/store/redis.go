package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

const (
	recentKey      = "experiments:recent"
	recentIndexCap = 100
	recordTTL      = 30 * 24 * time.Hour
)

type RedisConfig struct {
	Addr       string
	Password   string
	MaxRetries int
}

// RedisStore keeps each experiment as one JSON document plus an id list for
// recency. Documents expire after recordTTL; the index is capped at
// recentIndexCap entries.
type RedisStore struct {
	client *redis.Client
	logger *zerolog.Logger
}

func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *zerolog.Logger) (*RedisStore, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	client, err := connectRedis(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: client, logger: logger}, nil
}

func connectRedis(ctx context.Context, cfg RedisConfig, logger *zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := range cfg.MaxRetries {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("waiting before redis retry")
			time.Sleep(backoff)
		}

		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info().Int("attempts_needed", i+1).Msg("redis connected")
			return client, nil
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", cfg.MaxRetries, err)
}

func recordKey(id string) string {
	return "experiment:" + id
}

func (s *RedisStore) SaveExperiment(ctx context.Context, record models.ExperimentRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal experiment: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKey(record.ID), payload, recordTTL)
	pipe.LPush(ctx, recentKey, record.ID)
	pipe.LTrim(ctx, recentKey, 0, recentIndexCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist experiment: %w", err)
	}

	s.logger.Info().
		Str("experimentID", record.ID).
		Int("results", len(record.Summary.Results)).
		Msg("experiment persisted")
	return nil
}

func (s *RedisStore) GetExperiment(ctx context.Context, id string) (*models.ExperimentRecord, error) {
	payload, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load experiment: %w", err)
	}

	var record models.ExperimentRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experiment: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) RecentExperiments(ctx context.Context, limit int) ([]models.ExperimentRecord, error) {
	limit = normalizeLimit(limit)
	ids, err := s.client.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent index: %w", err)
	}

	records := make([]models.ExperimentRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetExperiment(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Indexed id whose document already expired.
			continue
		}
		if err != nil {
			return nil, err
		}
		record.Summary.Results = nil
		records = append(records, *record)
	}
	return records, nil
}

func (s *RedisStore) Close() {
	if err := s.client.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close redis client")
	}
}
