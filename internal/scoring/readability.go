package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/promptlab/promptlab/internal/models"
)

const readabilityFormula = "0.7 * (1 - |avg_sentence_len - 17.5| / 17.5) + 0.3 * min(1, length_variance / 50)"

const (
	idealSentenceLength = 17.5
	varianceCeiling     = 50.0
)

// ReadabilityScorer rates sentence structure: average sentence length close
// to a conversational ideal, plus some variety between sentence lengths so
// uniform staccato text does not score as well as natural prose.
type ReadabilityScorer struct{}

func NewReadabilityScorer() *ReadabilityScorer {
	return &ReadabilityScorer{}
}

func (s *ReadabilityScorer) Name() string { return "readability" }

func (s *ReadabilityScorer) Score(content, prompt string) models.MetricScore {
	lengths := sentenceLengths(content)
	if len(lengths) == 0 {
		return models.MetricScore{
			Score:       0,
			Explanation: "Content has no sentences to assess",
			Formula:     readabilityFormula,
			Factors: map[string]float64{
				"sentence_count": 0,
			},
		}
	}

	avg := mean(lengths)
	variance := populationVariance(lengths, avg)

	lengthScore := 1.0 - math.Abs(avg-idealSentenceLength)/idealSentenceLength
	varietyScore := math.Min(1.0, variance/varianceCeiling)
	score := Round2(sanitize(0.7*lengthScore + 0.3*varietyScore))

	return models.MetricScore{
		Score:       score,
		Explanation: fmt.Sprintf("%d sentences, %.1f words on average (variance %.1f)", len(lengths), avg, variance),
		Formula:     readabilityFormula,
		Factors: map[string]float64{
			"sentence_count":       float64(len(lengths)),
			"avg_sentence_length":  avg,
			"length_variance":      variance,
			"sentence_length_fit":  lengthScore,
			"sentence_variety_fit": varietyScore,
		},
	}
}

// sentenceLengths splits on terminal punctuation and counts words per
// sentence; whitespace-only fragments are dropped.
func sentenceLengths(content string) []float64 {
	parts := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	lengths := []float64{}
	for _, part := range parts {
		words := strings.Fields(part)
		if len(words) > 0 {
			lengths = append(lengths, float64(len(words)))
		}
	}
	return lengths
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationVariance(values []float64, avg float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(values))
}
