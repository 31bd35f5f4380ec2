package aggregator

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
	"github.com/promptlab/promptlab/internal/scoring"
)

// ErrNoData is returned when there are no scored responses to aggregate.
var ErrNoData = errors.New("no metrics to aggregate")

type Aggregator struct {
	logger *zerolog.Logger
}

func NewAggregator(logger *zerolog.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate averages each sub-score across the run and recomputes the
// overall from the averaged sub-scores, never from the per-response overalls.
func (a *Aggregator) Aggregate(metrics []models.QualityMetrics) (models.QualityMetrics, error) {
	if len(metrics) == 0 {
		return models.QualityMetrics{}, ErrNoData
	}

	coherence, completeness, readability, relevance := 0.0, 0.0, 0.0, 0.0
	for _, m := range metrics {
		coherence += m.Coherence
		completeness += m.Completeness
		readability += m.Readability
		relevance += m.Relevance
	}

	count := float64(len(metrics))
	average := models.QualityMetrics{
		Coherence:    scoring.Round2(coherence / count),
		Completeness: scoring.Round2(completeness / count),
		Readability:  scoring.Round2(readability / count),
		Relevance:    scoring.Round2(relevance / count),
	}
	average.OverallScore = scoring.Overall(
		average.Coherence,
		average.Completeness,
		average.Readability,
		average.Relevance,
	)

	a.logger.Info().
		Int("responses", len(metrics)).
		Float64("overall", average.OverallScore).
		Msg("aggregation complete")
	return average, nil
}
