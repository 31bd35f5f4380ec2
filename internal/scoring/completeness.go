package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/promptlab/promptlab/internal/models"
)

const completenessFormula = "min(1, prompt_coverage * 1.5) +0.2 question/answer bonus, x0.7 short-content penalty"

const shortContentTokens = 10

var questionWords = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "which": true, "explain": true, "describe": true, "tell": true,
}

// Single-word indicators are matched against the token set; multi-word ones
// against the lower-cased content.
var answerIndicators = []string{
	"yes", "no", "because", "therefore", "however", "specifically", "for example",
}

// CompletenessScorer checks whether content addresses the prompt: how much of
// the prompt's vocabulary the content covers, with a bonus when a question
// prompt gets an answer-shaped response and a penalty for very short content.
type CompletenessScorer struct{}

func NewCompletenessScorer() *CompletenessScorer {
	return &CompletenessScorer{}
}

func (s *CompletenessScorer) Name() string { return "completeness" }

func (s *CompletenessScorer) Score(content, prompt string) models.MetricScore {
	promptTokens := extractUniqueTokens(qualifyingTokens(prompt))
	contentWords := qualifyingTokens(content)
	contentTokens := extractUniqueTokens(contentWords)

	coverage := 0.0
	if len(promptTokens) > 0 {
		coverage = float64(countOverlap(promptTokens, contentTokens)) / float64(len(promptTokens))
	}
	score := math.Min(1.0, coverage*1.5)

	bonus := 0.0
	if hasQuestionWord(prompt) && hasAnswerIndicator(content) {
		bonus = 0.2
		score = math.Min(1.0, score+bonus)
	}

	penalty := 1.0
	if len(contentWords) < shortContentTokens {
		penalty = 0.7
		score *= penalty
	}

	score = Round2(sanitize(score))

	return models.MetricScore{
		Score:       score,
		Explanation: fmt.Sprintf("Content covers %.0f%% of prompt terms (bonus %.1f, length penalty x%.1f)", coverage*100, bonus, penalty),
		Formula:     completenessFormula,
		Factors: map[string]float64{
			"prompt_coverage":       coverage,
			"prompt_tokens":         float64(len(promptTokens)),
			"content_tokens":        float64(len(contentWords)),
			"question_answer_bonus": bonus,
			"short_content_penalty": penalty,
		},
	}
}

func hasQuestionWord(prompt string) bool {
	for _, token := range allTokens(prompt) {
		if questionWords[token] {
			return true
		}
	}
	return false
}

func hasAnswerIndicator(content string) bool {
	lowered := strings.ToLower(content)
	tokens := extractUniqueTokens(allTokens(content))
	for _, indicator := range answerIndicators {
		if strings.Contains(indicator, " ") {
			if strings.Contains(lowered, indicator) {
				return true
			}
		} else if tokens[indicator] {
			return true
		}
	}
	return false
}
