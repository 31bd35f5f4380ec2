package generation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

type promptCategory string

const (
	categoryCreative    promptCategory = "creative"
	categoryExplanatory promptCategory = "explanatory"
	categoryQuestion    promptCategory = "question"
	categoryCode        promptCategory = "code"
	categoryGeneral     promptCategory = "general"
)

// categoryMarkers are checked in priority order; the first category with a
// marker found in the prompt wins. Matching is plain substring containment.
var categoryMarkers = []struct {
	category promptCategory
	markers  []string
}{
	{categoryCreative, []string{"story", "creative", "write"}},
	{categoryExplanatory, []string{"explain", "how", "what is"}},
	{categoryQuestion, []string{"?", "question"}},
	{categoryCode, []string{"code", "program", "function"}},
}

func classifyPrompt(prompt string) promptCategory {
	lowered := strings.ToLower(prompt)
	for _, entry := range categoryMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(lowered, marker) {
				return entry.category
			}
		}
	}
	return categoryGeneral
}

// Every template takes a style descriptor and a topic, in that order.
var mockTemplates = map[promptCategory][]string{
	categoryCreative: {
		"Once upon a time, a %s tale began around %s. The characters drifted through scenes that kept shifting under them, and every choice pulled the plot somewhere unplanned. By the final page the journey itself had become the point.",
		"In a %s world built from %s, nothing stayed ordinary for long. Streets rearranged themselves overnight and strangers traded memories like coins. The story closed quietly, leaving more questions than it answered.",
		"The narrator took a %s approach to %s, sketching each moment in quick bright strokes. Tension gathered slowly, broke all at once, and settled into an ending that felt both surprising and inevitable.",
	},
	categoryExplanatory: {
		"Here is a %s explanation of %s. The core mechanism rests on a few simple parts that interact in predictable ways. Each part feeds the next, so tracing one complete cycle makes the whole system clear. Most confusion comes from skipping that first pass.",
		"To understand %s thinking about %s, start from the basic principle and build outward. The first layer covers what happens, the second why it happens, and the third when the pattern breaks down. Held together, the three layers explain most practical cases.",
		"A %s walkthrough of %s goes like this. Begin with the inputs and what constrains them. Then follow the transformation step by step, noting where results can vary. The output follows directly once those steps are clear.",
	},
	categoryQuestion: {
		"That is a %s question about %s. The short answer is yes, with caveats that matter in practice. The longer answer depends on context, because the trade-offs shift as the situation changes. Weighing those trade-offs honestly is most of the work.",
		"Taking a %s view of %s, the answer has two halves. The first half covers the common case, which behaves predictably. The second half covers the exceptions, because the edges are where the interesting behavior lives.",
		"Considered in a %s light, %s comes down to a balance. Some factors push one way and some the other, therefore no single answer fits every case. The practical move is to decide which factors dominate your situation.",
	},
	categoryCode: {
		"Here is a %s sketch for %s. Define a small function that validates its inputs first, then performs the core transformation, then returns an explicit result. Keep the error paths short and obvious so the happy path stays readable.",
		"A %s implementation of %s splits into three parts. A parser normalizes the input, a processor applies the core logic, and a formatter shapes the output. Each part stays testable because the boundaries are explicit.",
		"For a %s take on %s, structure the program around one clear data type. Functions take it and return it, side effects stay at the edges, and the test suite exercises each transformation in isolation.",
	},
	categoryGeneral: {
		"A %s response regarding %s follows. The subject rewards a second look, because the obvious reading misses the detail that changes the conclusion. Specifically, the parts interact more than they first appear to.",
		"Considering %s aspects of %s, several threads stand out. Each thread holds on its own, yet the full picture only emerges once they are braided together. That synthesis is what a careful treatment delivers.",
		"Taking a %s pass over %s yields a compact summary. The essentials fit in a few sentences, however the implications spread wider than the summary suggests. The details below the surface reward patience.",
	},
}

// styleFor maps a temperature band to the voice the templates adopt.
func styleFor(temperature float64) string {
	switch {
	case temperature > 0.7:
		return "highly imaginative"
	case temperature >= 0.4:
		return "balanced"
	default:
		return "structured and formal"
	}
}

// topicOf condenses a prompt into a phrase the templates can embed.
func topicOf(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return "the request"
	}
	if len(words) > 6 {
		words = words[:6]
	}
	topic := strings.Join(words, " ")
	return strings.ToLower(strings.TrimRight(topic, ".!?,;:"))
}

// MockGenerator fabricates plausible content without any provider. It backs
// the degraded path of the remote generator and the provider=mock mode.
type MockGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zerolog.Logger
}

// NewMockGenerator builds a mock generator around rng. A nil rng gets a
// fresh, non-deterministic source.
func NewMockGenerator(rng *rand.Rand, logger *zerolog.Logger) *MockGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MockGenerator{
		rng:    rng,
		logger: logger,
	}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, params models.GenerationParameters) models.GeneratedResult {
	category := classifyPrompt(prompt)
	templates := mockTemplates[category]

	m.mu.Lock()
	template := templates[m.rng.IntN(len(templates))]
	tokenJitter := m.rng.IntN(21)
	latencyJitter := m.rng.IntN(301)
	m.mu.Unlock()

	content := fmt.Sprintf(template, styleFor(params.Temperature), topicOf(prompt))

	m.logger.Debug().
		Str("category", string(category)).
		Float64("temperature", params.Temperature).
		Msg("mock content generated")

	return models.GeneratedResult{
		Content:          content,
		TokensUsed:       len(content)/4 + tokenJitter,
		GenerationTimeMs: int64(200 + len(content)/10 + latencyJitter),
		Parameters:       params,
		ModelID:          "mock",
		Source:           models.SourceMock,
	}
}
