package scoring

import (
	"math"
	"testing"
)

func TestCompletenessScorer(t *testing.T) {

	scorer := NewCompletenessScorer()

	tests := []struct {
		name    string
		content string
		prompt  string
		score   float64
	}{
		{
			name:    "Empty content",
			content: "",
			prompt:  "Explain how tides work",
			score:   0.0,
		},
		{
			name:    "Terse answer to a question",
			content: "Yes.",
			prompt:  "What causes rain?",
			// no prompt coverage, +0.2 indicator bonus, x0.7 short content
			score: 0.14,
		},
		{
			name:    "Detailed answer to a question",
			content: "Rain is caused by water vapor condensing in clouds because warm moist air rises and cools, therefore droplets form and fall.",
			prompt:  "What causes rain?",
			// 1/3 coverage * 1.5 = 0.5, +0.2 bonus, no length penalty
			score: 0.70,
		},
		{
			name:    "Prompt with no qualifying tokens",
			content: "This answer has plenty of meaningful words but nothing to cover since every prompt token was too short.",
			prompt:  "a b c",
			score:   0.0,
		},
		{
			name:    "Full coverage without question words",
			content: "Our encryption layer protects security boundaries and the encryption keys rotate often enough for security audits to pass cleanly.",
			prompt:  "encryption security",
			score:   1.0,
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

// A detailed response must outscore a bare acknowledgement to the same
// question, and the factor maps must say why.
func TestCompletenessDiscrepancy(t *testing.T) {
	scorer := NewCompletenessScorer()
	prompt := "What causes rain?"

	terse := scorer.Score("Yes.", prompt)
	detailed := scorer.Score("Rain is caused by water vapor condensing in clouds because warm moist air rises and cools, therefore droplets form and fall.", prompt)

	if detailed.Score <= terse.Score {
		t.Fatalf("detailed answer scored %f, terse scored %f", detailed.Score, terse.Score)
	}

	if terse.Factors["short_content_penalty"] != 0.7 {
		t.Errorf("terse answer should carry the short content penalty, factors: %v", terse.Factors)
	}
	if detailed.Factors["short_content_penalty"] != 1.0 {
		t.Errorf("detailed answer should not carry the short content penalty, factors: %v", detailed.Factors)
	}
	if detailed.Factors["question_answer_bonus"] != 0.2 {
		t.Errorf("detailed answer should earn the question/answer bonus, factors: %v", detailed.Factors)
	}
}

func TestAnswerIndicatorDetection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"Single word indicator", "Therefore the claim holds.", true},
		{"Phrase indicator", "Many languages, for example Go, compile quickly.", true},
		{"No substring false positive", "Nothing is known about that topic.", false},
		{"Empty content", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := hasAnswerIndicator(test.content); got != test.want {
				t.Errorf("hasAnswerIndicator(%q) = %v, want %v", test.content, got, test.want)
			}
		})
	}
}
