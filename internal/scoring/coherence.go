package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/promptlab/promptlab/internal/models"
)

const coherenceFormula = "min(1, unique_tokens/total_tokens * 1.2)"

// CoherenceScorer approximates lexical diversity: the ratio of unique words
// to total words, stretched by 1.2 so ordinary prose can reach 1.0. Highly
// repetitive content scores low.
type CoherenceScorer struct{}

func NewCoherenceScorer() *CoherenceScorer {
	return &CoherenceScorer{}
}

func (s *CoherenceScorer) Name() string { return "coherence" }

func (s *CoherenceScorer) Score(content, prompt string) models.MetricScore {
	// Whitespace split only; punctuation stays attached on purpose so the
	// diversity ratio reflects the raw surface form.
	words := strings.Fields(strings.ToLower(content))
	total := len(words)
	if total == 0 {
		return models.MetricScore{
			Score:       0,
			Explanation: "Content has no tokens to assess",
			Formula:     coherenceFormula,
			Factors: map[string]float64{
				"unique_tokens": 0,
				"total_tokens":  0,
			},
		}
	}

	unique := len(extractUniqueTokens(words))
	ratio := float64(unique) / float64(total)
	score := Round2(sanitize(math.Min(1.0, ratio*1.2)))

	return models.MetricScore{
		Score:       score,
		Explanation: fmt.Sprintf("%d unique of %d total tokens (diversity ratio %.2f)", unique, total, ratio),
		Formula:     coherenceFormula,
		Factors: map[string]float64{
			"unique_tokens":   float64(unique),
			"total_tokens":    float64(total),
			"diversity_ratio": ratio,
		},
	}
}
