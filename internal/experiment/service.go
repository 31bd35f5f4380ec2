package experiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// MaxRunCount caps how many parameter tuples one experiment may sample.
const MaxRunCount = 20

// ParameterSampler draws generation parameter tuples from a range
type ParameterSampler interface {
	Sample(r models.ParameterRange, count int, modelID string) []models.GenerationParameters
}

// GenerationRunner produces one result per tuple, in order
type GenerationRunner interface {
	Run(ctx context.Context, prompt string, params []models.GenerationParameters) models.GenerationOutcome
}

// ResponseScorer scores one generated text against its prompt
type ResponseScorer interface {
	ScoreResponse(content string, prompt string) (models.QualityMetrics, map[string]models.MetricScore)
}

// MetricsAggregator averages per-response metrics into run-level metrics
type MetricsAggregator interface {
	Aggregate(metrics []models.QualityMetrics) (models.QualityMetrics, error)
}

// ResultStore persists completed experiments
type ResultStore interface {
	SaveExperiment(ctx context.Context, record models.ExperimentRecord) error
}

type Service struct {
	sampler    ParameterSampler
	runner     GenerationRunner
	scorer     ResponseScorer
	aggregator MetricsAggregator
	store      ResultStore
	logger     *zerolog.Logger
}

func NewService(
	sampler ParameterSampler,
	runner GenerationRunner,
	scorer ResponseScorer,
	aggregator MetricsAggregator,
	store ResultStore,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		sampler:    sampler,
		runner:     runner,
		scorer:     scorer,
		aggregator: aggregator,
		store:      store,
		logger:     logger,
	}
}

// RunExperiment samples parameter tuples, generates and scores one response
// per tuple, and averages the metrics. Malformed requests are rejected with
// a ValidationError before any generation starts. Persistence is best
// effort: a failed save is logged and the record is still returned.
func (s *Service) RunExperiment(ctx context.Context, req models.ExperimentRequest) (*models.ExperimentRecord, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s.logger.Info().
		Str("experimentID", id).
		Str("model", req.ModelID).
		Int("runCount", req.RunCount).
		Msg("starting experiment")

	params := s.sampler.Sample(req.ParameterRange, req.RunCount, req.ModelID)
	outcome := s.runner.Run(ctx, req.Prompt, params)

	scored := make([]models.ScoredResponse, 0, len(outcome.Results))
	collected := make([]models.QualityMetrics, 0, len(outcome.Results))
	for _, result := range outcome.Results {
		metrics, details := s.scorer.ScoreResponse(result.Content, req.Prompt)
		scored = append(scored, models.ScoredResponse{
			Result:  result,
			Metrics: metrics,
			Details: details,
		})
		collected = append(collected, metrics)
	}

	average, err := s.aggregator.Aggregate(collected)
	if err != nil {
		s.logger.Warn().Err(err).Str("experimentID", id).Msg("nothing to aggregate")
		average = models.QualityMetrics{}
	}

	record := &models.ExperimentRecord{
		ID:       id,
		Prompt:   req.Prompt,
		ModelID:  req.ModelID,
		RunCount: req.RunCount,
		Summary: models.ExperimentSummary{
			Results:   scored,
			Average:   average,
			Attempted: outcome.Attempted,
			Produced:  outcome.Produced,
		},
		CreatedAt: time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveExperiment(ctx, *record); err != nil {
			s.logger.Error().Err(err).Str("experimentID", id).Msg("failed to persist experiment")
		}
	}

	s.logger.Info().
		Str("experimentID", id).
		Int("attempted", outcome.Attempted).
		Int("produced", outcome.Produced).
		Float64("overall", average.OverallScore).
		Msg("experiment complete")
	return record, nil
}

// ScoreResponse scores a single text against a prompt without running an
// experiment.
func (s *Service) ScoreResponse(content string, prompt string) (models.QualityMetrics, map[string]models.MetricScore) {
	return s.scorer.ScoreResponse(content, prompt)
}

// Aggregate averages already-computed metrics.
func (s *Service) Aggregate(metrics []models.QualityMetrics) (models.QualityMetrics, error) {
	return s.aggregator.Aggregate(metrics)
}

func validate(req models.ExperimentRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	if req.RunCount < 1 || req.RunCount > MaxRunCount {
		return &ValidationError{Field: "run_count", Reason: fmt.Sprintf("must be between 1 and %d", MaxRunCount)}
	}
	return validateRange(req.ParameterRange)
}

func validateRange(r models.ParameterRange) error {
	if r == (models.ParameterRange{}) {
		return &ValidationError{Field: "parameter_range", Reason: "missing"}
	}
	if r.Temperature.Min < 0 || r.Temperature.Max < r.Temperature.Min {
		return &ValidationError{Field: "parameter_range.temperature", Reason: "bounds must satisfy 0 <= min <= max"}
	}
	if r.TopP.Min < 0 || r.TopP.Max > 1 || r.TopP.Max < r.TopP.Min {
		return &ValidationError{Field: "parameter_range.top_p", Reason: "bounds must satisfy 0 <= min <= max <= 1"}
	}
	if r.MaxTokens.Min < 1 || r.MaxTokens.Max < r.MaxTokens.Min {
		return &ValidationError{Field: "parameter_range.max_tokens", Reason: "bounds must satisfy 1 <= min <= max"}
	}
	return nil
}
