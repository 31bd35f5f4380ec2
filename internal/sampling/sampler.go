package sampling

import (
	"math"
	"math/rand/v2"

	"github.com/promptlab/promptlab/internal/models"
)

// Sampler draws generation parameter tuples uniformly from a range. The
// random source is injected so experiments can be replayed with a fixed seed.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler builds a sampler around rng. A nil rng gets a fresh,
// non-deterministic source.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{rng: rng}
}

// Sample draws count tuples from r, tagging each with modelID. Temperature
// and top-p are rounded to two decimals, the token bound is floored to a
// whole token. Draw order is preserved in the returned slice. The range is
// assumed validated by the caller.
func (s *Sampler) Sample(r models.ParameterRange, count int, modelID string) []models.GenerationParameters {
	params := make([]models.GenerationParameters, 0, count)
	for i := 0; i < count; i++ {
		params = append(params, models.GenerationParameters{
			Temperature: round2(s.uniform(r.Temperature)),
			TopP:        round2(s.uniform(r.TopP)),
			MaxTokens:   s.uniformInt(r.MaxTokens),
			ModelID:     modelID,
		})
	}
	return params
}

func (s *Sampler) uniform(b models.Bounds) float64 {
	return b.Min + s.rng.Float64()*(b.Max-b.Min)
}

func (s *Sampler) uniformInt(b models.IntBounds) int {
	span := float64(b.Max - b.Min)
	return b.Min + int(math.Floor(s.rng.Float64()*span))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
