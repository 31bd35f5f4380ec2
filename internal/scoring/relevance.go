package scoring

import (
	"fmt"
	"math"

	"github.com/promptlab/promptlab/internal/models"
)

const relevanceFormula = "min(1, keyword_overlap * 1.3), x0.5 when overlap < 0.1"

const lowOverlapThreshold = 0.1

// RelevanceScorer measures keyword overlap between prompt and content after
// stop-word filtering. A prompt made entirely of stop words carries no topical
// signal, so it scores a neutral 0.5 rather than penalizing the content.
type RelevanceScorer struct{}

func NewRelevanceScorer() *RelevanceScorer {
	return &RelevanceScorer{}
}

func (s *RelevanceScorer) Name() string { return "relevance" }

func (s *RelevanceScorer) Score(content, prompt string) models.MetricScore {
	promptTokens := extractUniqueTokens(meaningfulTokens(prompt))
	if len(promptTokens) == 0 {
		return models.MetricScore{
			Score:       0.5,
			Explanation: "Prompt has no meaningful tokens, relevance is neutral",
			Formula:     relevanceFormula,
			Factors: map[string]float64{
				"prompt_tokens": 0,
			},
		}
	}

	contentTokens := extractUniqueTokens(meaningfulTokens(content))
	overlap := float64(countOverlap(promptTokens, contentTokens)) / float64(len(promptTokens))

	score := math.Min(1.0, overlap*1.3)
	penalty := 1.0
	if overlap < lowOverlapThreshold {
		penalty = 0.5
		score *= penalty
	}
	score = Round2(sanitize(score))

	return models.MetricScore{
		Score:       score,
		Explanation: fmt.Sprintf("%.0f%% of prompt keywords found in content", overlap*100),
		Formula:     relevanceFormula,
		Factors: map[string]float64{
			"keyword_overlap":     overlap,
			"prompt_tokens":       float64(len(promptTokens)),
			"content_tokens":      float64(len(contentTokens)),
			"low_overlap_penalty": penalty,
		},
	}
}
