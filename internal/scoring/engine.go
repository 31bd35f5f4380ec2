package scoring

import (
	"github.com/promptlab/promptlab/internal/models"
	"github.com/rs/zerolog"
)

// Metric weights. They sum to exactly 1.0 so the overall score stays in [0, 1].
const (
	WeightCoherence    = 0.25
	WeightCompleteness = 0.30
	WeightReadability  = 0.20
	WeightRelevance    = 0.25
)

// Overall combines four sub-scores into the weighted overall score.
func Overall(coherence, completeness, readability, relevance float64) float64 {
	weighted := WeightCoherence*sanitize(coherence) +
		WeightCompleteness*sanitize(completeness) +
		WeightReadability*sanitize(readability) +
		WeightRelevance*sanitize(relevance)
	return Round2(weighted)
}

// Engine runs every metric over a piece of generated content.
type Engine struct {
	scorers []Scorer
	logger  *zerolog.Logger
}

func NewEngine(logger *zerolog.Logger) *Engine {
	return &Engine{
		scorers: []Scorer{
			NewCoherenceScorer(),
			NewCompletenessScorer(),
			NewReadabilityScorer(),
			NewRelevanceScorer(),
		},
		logger: logger,
	}
}

// ScoreResponse scores content against the prompt it was generated for.
// It returns the bundled metrics plus the per-metric diagnostics keyed by
// metric name.
func (e *Engine) ScoreResponse(content, prompt string) (models.QualityMetrics, map[string]models.MetricScore) {
	details := make(map[string]models.MetricScore, len(e.scorers))
	for _, scorer := range e.scorers {
		details[scorer.Name()] = scorer.Score(content, prompt)
	}

	metrics := models.QualityMetrics{
		Coherence:    details["coherence"].Score,
		Completeness: details["completeness"].Score,
		Readability:  details["readability"].Score,
		Relevance:    details["relevance"].Score,
	}
	metrics.OverallScore = Overall(metrics.Coherence, metrics.Completeness, metrics.Readability, metrics.Relevance)

	e.logger.
		Debug().
		Float64("coherence", metrics.Coherence).
		Float64("completeness", metrics.Completeness).
		Float64("readability", metrics.Readability).
		Float64("relevance", metrics.Relevance).
		Float64("overall", metrics.OverallScore).
		Msg("response scored")

	return metrics, details
}
