package scoring

import (
	"math"
	"strings"

	"github.com/promptlab/promptlab/internal/models"
)

// Scorer is one quality metric. Scorers are pure: same content and prompt
// always produce the same MetricScore, and every score lands in [0, 1].
type Scorer interface {
	Name() string
	Score(content, prompt string) models.MetricScore
}

// Round2 rounds to two decimals, the precision every emitted score uses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sanitize coerces NaN, Inf and out-of-range values into [0, 1].
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"of": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "against": true, "between": true, "into": true,
	"through": true, "during": true, "before": true, "after": true,
	"to": true, "from": true, "in": true, "on": true,
}

// allTokens lower-cases, strips punctuation and splits on whitespace.
func allTokens(s string) []string {
	s = removePunctuation(strings.ToLower(s))
	tokens := []string{}
	for word := range strings.FieldsSeq(s) {
		tokens = append(tokens, word)
	}
	return tokens
}

// qualifyingTokens keeps only tokens longer than two characters.
func qualifyingTokens(s string) []string {
	tokens := []string{}
	for _, word := range allTokens(s) {
		if len(word) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// meaningfulTokens additionally drops stop words.
func meaningfulTokens(s string) []string {
	tokens := []string{}
	for _, word := range qualifyingTokens(s) {
		if !stopWords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func extractUniqueTokens(tokens []string) map[string]bool {
	unique := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		unique[t] = true
	}
	return unique
}

func countOverlap(prompt, content map[string]bool) int {
	count := 0
	for token := range prompt {
		if content[token] {
			count++
		}
	}
	return count
}

func removePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:()[]{}\"'", r) {
			return -1
		}
		return r
	}, s)
}
