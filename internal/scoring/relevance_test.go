package scoring

import (
	"math"
	"testing"
)

func TestRelevanceScorer(t *testing.T) {

	scorer := NewRelevanceScorer()

	tests := []struct {
		name    string
		content string
		prompt  string
		score   float64
	}{
		{
			name:    "All stop word prompt is neutral",
			content: "any generated content at all",
			prompt:  "the for with about",
			score:   0.5,
		},
		{
			name:    "Empty prompt is neutral",
			content: "any generated content at all",
			prompt:  "",
			score:   0.5,
		},
		{
			name:    "Full overlap",
			content: "encryption and security matter",
			prompt:  "encryption security",
			score:   1.0,
		},
		{
			name:    "Zero overlap",
			content: "banana bread recipe",
			prompt:  "quantum physics",
			score:   0.0,
		},
		{
			name:    "Low overlap halved",
			content: "apple pie",
			prompt:  "apple banana cherry orange grape kiwi mango peach plum fig date lime",
			// 1/12 overlap -> 0.1083 * 0.5
			score: 0.05,
		},
		{
			name:    "Partial overlap",
			content: "the cache stores responses",
			prompt:  "how does the cache layer work",
			// prompt keywords: how, cache, layer, work -> 1/4 found
			score: 0.33,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := scorer.Score(test.content, test.prompt)

			if math.Abs(result.Score-test.score) > 1e-9 {
				t.Errorf("Score: %f, want: %f", result.Score, test.score)
			}
		})
	}
}

func TestRelevanceNeutralCarriesNoOverlapFactors(t *testing.T) {
	scorer := NewRelevanceScorer()

	result := scorer.Score("content", "the of in on")

	if result.Score != 0.5 {
		t.Fatalf("Score: %f, want 0.5", result.Score)
	}
	if result.Factors["prompt_tokens"] != 0 {
		t.Errorf("prompt_tokens: %f, want 0", result.Factors["prompt_tokens"])
	}
}
