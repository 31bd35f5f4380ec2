package scoring

import (
	"math"
	"strings"
	"testing"
)

func TestCoherenceScorer(t *testing.T) {

	scorer := NewCoherenceScorer()

	tests := []struct {
		name    string
		content string
		score   float64
	}{
		{
			name:    "Empty content",
			content: "",
			score:   0.0,
		},
		{
			name:    "Whitespace only",
			content: "   \n\t  ",
			score:   0.0,
		},
		{
			name:    "Fully repetitive",
			content: "a a a a",
			score:   0.30,
		},
		{
			name:    "All unique words",
			content: "the quick brown fox jumps",
			score:   1.0,
		},
		{
			name:    "Mixed repetition",
			content: "go go learn go now",
			score:   0.72,
		},
		{
			name:    "Case folded repetition",
			content: "Go GO go",
			score:   0.40,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := scorer.Score(test.content, "any prompt")

			if math.Abs(result.Score-test.score) > 1e-9 {
				t.Errorf("Score: %f, want: %f", result.Score, test.score)
			}

			if result.Formula == "" {
				t.Error("Formula must not be empty")
			}

			if result.Explanation == "" {
				t.Error("Explanation must not be empty")
			}
		})
	}
}

func TestCoherenceIgnoresPrompt(t *testing.T) {
	scorer := NewCoherenceScorer()

	a := scorer.Score("some generated text here", "prompt one")
	b := scorer.Score("some generated text here", "completely different prompt")

	if a.Score != b.Score {
		t.Errorf("coherence must not depend on the prompt: %f vs %f", a.Score, b.Score)
	}
}

func TestCoherenceFactors(t *testing.T) {
	scorer := NewCoherenceScorer()

	result := scorer.Score("one two two three three three", "prompt")

	if got := result.Factors["total_tokens"]; got != 6 {
		t.Errorf("total_tokens: %f, want 6", got)
	}
	if got := result.Factors["unique_tokens"]; got != 3 {
		t.Errorf("unique_tokens: %f, want 3", got)
	}
	if !strings.Contains(result.Explanation, "3 unique of 6") {
		t.Errorf("unexpected explanation: %s", result.Explanation)
	}
}
