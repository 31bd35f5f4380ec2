package scoring

import (
	"math"
	"strings"
	"testing"
)

func TestReadabilityScorer(t *testing.T) {

	scorer := NewReadabilityScorer()

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
			name:    "Punctuation only",
			content: "...!!!???",
			score:   0.0,
		},
		{
			name:    "Single short sentence",
			content: "word",
			// avg 1 word: 0.7 * (1 - 16.5/17.5), no variance
			score: 0.04,
		},
		{
			name: "Ideal average length",
			content: strings.TrimSpace(strings.Repeat("word ", 17)) + ". " +
				strings.TrimSpace(strings.Repeat("word ", 18)) + ".",
			// avg 17.5, variance 0.25
			score: 0.70,
		},
		{
			name:    "Overlong sentence clamps to zero",
			content: strings.TrimSpace(strings.Repeat("word ", 40)) + ".",
			score:   0.0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := scorer.Score(test.content, "any prompt")

			if math.Abs(result.Score-test.score) > 1e-9 {
				t.Errorf("Score: %f, want: %f", result.Score, test.score)
			}

			if result.Score < 0 || result.Score > 1 {
				t.Errorf("Score out of range: %f", result.Score)
			}
		})
	}
}

func TestSentenceLengths(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []float64
	}{
		{
			name:    "Mixed terminators",
			content: "One two three. Four five! Six?",
			want:    []float64{3, 2, 1},
		},
		{
			name:    "Trailing fragment without terminator",
			content: "First sentence. trailing words",
			want:    []float64{2, 2},
		},
		{
			name:    "Consecutive terminators",
			content: "Wait... what happened?",
			want:    []float64{1, 2},
		},
		{
			name:    "Empty",
			content: "",
			want:    []float64{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := sentenceLengths(test.content)

			if len(got) != len(test.want) {
				t.Fatalf("lengths: %v, want: %v", got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("lengths: %v, want: %v", got, test.want)
					break
				}
			}
		})
	}
}

func TestReadabilityVarietyReward(t *testing.T) {
	scorer := NewReadabilityScorer()

	// Same average length, one uniform and one varied.
	uniform := scorer.Score(
		strings.TrimSpace(strings.Repeat("word ", 17))+". "+
			strings.TrimSpace(strings.Repeat("word ", 17))+".", "p")
	varied := scorer.Score(
		strings.TrimSpace(strings.Repeat("word ", 7))+". "+
			strings.TrimSpace(strings.Repeat("word ", 27))+".", "p")

	if varied.Score <= uniform.Score {
		t.Errorf("varied sentence lengths should outscore uniform ones: %f vs %f",
			varied.Score, uniform.Score)
	}
}
