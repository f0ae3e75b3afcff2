package draw

import (
	"math/rand"
	"sync"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

// Sampler selects cards uniformly at random without replacement.
// Implementations must be safe for concurrent use.
type Sampler interface {
	// Sample returns up to count distinct elements of candidates, chosen
	// uniformly. When count >= len(candidates), every candidate is
	// returned. The input slice is never modified.
	Sample(candidates []*domain.Card, count int) []*domain.Card
}

// randSampler backs Sample with a math/rand source. The source is guarded
// by a mutex because rand.Rand is not safe for concurrent use.
type randSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded from the given source. Pass a fixed
// seed in tests to make draws reproducible.
func NewSampler(seed int64) Sampler {
	return &randSampler{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Sample implements Sampler.Sample using a partial Fisher-Yates shuffle:
// only the first count positions are settled, so large pools stay cheap.
func (s *randSampler) Sample(candidates []*domain.Card, count int) []*domain.Card {
	if count <= 0 || len(candidates) == 0 {
		return []*domain.Card{}
	}

	if count >= len(candidates) {
		result := make([]*domain.Card, len(candidates))
		copy(result, candidates)
		return result
	}

	pool := make([]*domain.Card, len(candidates))
	copy(pool, candidates)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:count]
}
