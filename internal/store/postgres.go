package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// PostgresStore maps experiments onto three tables: one row per experiment,
// one row per generated result, four metric detail rows per result.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewPostgresStore(ctx context.Context, cfg PostgresConfig, logger *zerolog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	s := &PostgresStore{pool: pool, logger: logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info().Str("database", cfg.Database).Msg("postgres store ready")
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS experiments (
			id UUID PRIMARY KEY,
			prompt TEXT NOT NULL,
			model_id TEXT NOT NULL DEFAULT '',
			run_count INT NOT NULL,
			attempted INT NOT NULL,
			produced INT NOT NULL,
			avg_coherence DOUBLE PRECISION NOT NULL,
			avg_completeness DOUBLE PRECISION NOT NULL,
			avg_readability DOUBLE PRECISION NOT NULL,
			avg_relevance DOUBLE PRECISION NOT NULL,
			avg_overall DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS generated_results (
			experiment_id UUID NOT NULL REFERENCES experiments(id) ON DELETE CASCADE,
			position INT NOT NULL,
			content TEXT NOT NULL,
			model_id TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			tokens_used INT NOT NULL,
			generation_time_ms BIGINT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			top_p DOUBLE PRECISION NOT NULL,
			max_tokens INT NOT NULL,
			coherence DOUBLE PRECISION NOT NULL,
			completeness DOUBLE PRECISION NOT NULL,
			readability DOUBLE PRECISION NOT NULL,
			relevance DOUBLE PRECISION NOT NULL,
			overall DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (experiment_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS metric_scores (
			experiment_id UUID NOT NULL REFERENCES experiments(id) ON DELETE CASCADE,
			position INT NOT NULL,
			metric TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			explanation TEXT NOT NULL,
			formula TEXT NOT NULL,
			factors JSONB,
			PRIMARY KEY (experiment_id, position, metric)
		)`,
		`CREATE INDEX IF NOT EXISTS experiments_created_at_idx
			ON experiments (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveExperiment(ctx context.Context, record models.ExperimentRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if we don't commit

	experimentQuery := `
		INSERT INTO experiments (
			id, prompt, model_id, run_count, attempted, produced,
			avg_coherence, avg_completeness, avg_readability, avg_relevance,
			avg_overall, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	avg := record.Summary.Average
	_, err = tx.Exec(ctx, experimentQuery,
		record.ID, record.Prompt, record.ModelID, record.RunCount,
		record.Summary.Attempted, record.Summary.Produced,
		avg.Coherence, avg.Completeness, avg.Readability, avg.Relevance,
		avg.OverallScore, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert experiment: %w", err)
	}

	resultQuery := `
		INSERT INTO generated_results (
			experiment_id, position, content, model_id, source, tokens_used,
			generation_time_ms, temperature, top_p, max_tokens,
			coherence, completeness, readability, relevance, overall
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	detailQuery := `
		INSERT INTO metric_scores (
			experiment_id, position, metric, score, explanation, formula, factors
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, scored := range record.Summary.Results {
		result := scored.Result
		metrics := scored.Metrics
		_, err := tx.Exec(ctx, resultQuery,
			record.ID, i, result.Content, result.ModelID, string(result.Source),
			result.TokensUsed, result.GenerationTimeMs,
			result.Parameters.Temperature, result.Parameters.TopP, result.Parameters.MaxTokens,
			metrics.Coherence, metrics.Completeness, metrics.Readability,
			metrics.Relevance, metrics.OverallScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}

		for metric, detail := range scored.Details {
			factorsJSON, err := json.Marshal(detail.Factors)
			if err != nil {
				return fmt.Errorf("failed to marshal factors for %s: %w", metric, err)
			}
			_, err = tx.Exec(ctx, detailQuery,
				record.ID, i, metric, detail.Score, detail.Explanation,
				detail.Formula, factorsJSON,
			)
			if err != nil {
				return fmt.Errorf("failed to insert metric detail %s: %w", metric, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit experiment: %w", err)
	}

	s.logger.Info().
		Str("experimentID", record.ID).
		Int("results", len(record.Summary.Results)).
		Msg("experiment persisted")
	return nil
}

func (s *PostgresStore) GetExperiment(ctx context.Context, id string) (*models.ExperimentRecord, error) {
	record := models.ExperimentRecord{ID: id}
	avg := &record.Summary.Average

	row := s.pool.QueryRow(ctx, `
		SELECT prompt, model_id, run_count, attempted, produced,
			avg_coherence, avg_completeness, avg_readability, avg_relevance,
			avg_overall, created_at
		FROM experiments WHERE id = $1
	`, id)
	err := row.Scan(
		&record.Prompt, &record.ModelID, &record.RunCount,
		&record.Summary.Attempted, &record.Summary.Produced,
		&avg.Coherence, &avg.Completeness, &avg.Readability, &avg.Relevance,
		&avg.OverallScore, &record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load experiment: %w", err)
	}

	results, err := s.loadResults(ctx, id)
	if err != nil {
		return nil, err
	}
	// The requested model is stored once on the experiment row.
	for i := range results {
		results[i].Result.Parameters.ModelID = record.ModelID
	}
	record.Summary.Results = results

	return &record, nil
}

func (s *PostgresStore) loadResults(ctx context.Context, id string) ([]models.ScoredResponse, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT position, content, model_id, source, tokens_used,
			generation_time_ms, temperature, top_p, max_tokens,
			coherence, completeness, readability, relevance, overall
		FROM generated_results WHERE experiment_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	var scored []models.ScoredResponse
	positions := make(map[int]int)
	for rows.Next() {
		var position int
		var source string
		var response models.ScoredResponse
		result := &response.Result
		metrics := &response.Metrics
		err := rows.Scan(
			&position, &result.Content, &result.ModelID, &source,
			&result.TokensUsed, &result.GenerationTimeMs,
			&result.Parameters.Temperature, &result.Parameters.TopP,
			&result.Parameters.MaxTokens,
			&metrics.Coherence, &metrics.Completeness, &metrics.Readability,
			&metrics.Relevance, &metrics.OverallScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		result.Source = models.ResultSource(source)
		positions[position] = len(scored)
		scored = append(scored, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result rows failed: %w", err)
	}

	if err := s.attachDetails(ctx, id, positions, scored); err != nil {
		return nil, err
	}
	return scored, nil
}

func (s *PostgresStore) attachDetails(ctx context.Context, id string, positions map[int]int, scored []models.ScoredResponse) error {
	rows, err := s.pool.Query(ctx, `
		SELECT position, metric, score, explanation, formula, factors
		FROM metric_scores WHERE experiment_id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to load metric details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var position int
		var metric string
		var detail models.MetricScore
		var factorsJSON []byte
		if err := rows.Scan(&position, &metric, &detail.Score, &detail.Explanation, &detail.Formula, &factorsJSON); err != nil {
			return fmt.Errorf("failed to scan metric detail: %w", err)
		}
		if len(factorsJSON) > 0 {
			if err := json.Unmarshal(factorsJSON, &detail.Factors); err != nil {
				return fmt.Errorf("failed to unmarshal factors: %w", err)
			}
		}

		index, ok := positions[position]
		if !ok {
			continue
		}
		if scored[index].Details == nil {
			scored[index].Details = make(map[string]models.MetricScore, 4)
		}
		scored[index].Details[metric] = detail
	}
	return rows.Err()
}

func (s *PostgresStore) RecentExperiments(ctx context.Context, limit int) ([]models.ExperimentRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, prompt, model_id, run_count, attempted, produced,
			avg_coherence, avg_completeness, avg_readability, avg_relevance,
			avg_overall, created_at
		FROM experiments ORDER BY created_at DESC LIMIT $1
	`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var records []models.ExperimentRecord
	for rows.Next() {
		var record models.ExperimentRecord
		avg := &record.Summary.Average
		err := rows.Scan(
			&record.ID, &record.Prompt, &record.ModelID, &record.RunCount,
			&record.Summary.Attempted, &record.Summary.Produced,
			&avg.Coherence, &avg.Completeness, &avg.Readability, &avg.Relevance,
			&avg.OverallScore, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experiment row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
