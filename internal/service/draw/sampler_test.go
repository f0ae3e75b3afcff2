package draw

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

func makeCandidates(t *testing.T, n int) []*domain.Card {
	t.Helper()

	candidates := make([]*domain.Card, n)
	for i := range candidates {
		card, err := domain.NewCard(uuid.New(), "M", "content", "")
		require.NoError(t, err)
		candidates[i] = card
	}
	return candidates
}

func TestSamplerReturnsDistinctSubset(t *testing.T) {
	t.Parallel()

	sampler := NewSampler(42)
	candidates := makeCandidates(t, 10)

	picked := sampler.Sample(candidates, 4)
	require.Len(t, picked, 4)

	inPool := make(map[uuid.UUID]bool, len(candidates))
	for _, card := range candidates {
		inPool[card.ID] = true
	}

	seen := make(map[uuid.UUID]bool, len(picked))
	for _, card := range picked {
		assert.True(t, inPool[card.ID], "sampled card must come from the candidate pool")
		assert.False(t, seen[card.ID], "sampled cards must be distinct")
		seen[card.ID] = true
	}
}

func TestSamplerReturnsAllWhenPoolTooSmall(t *testing.T) {
	t.Parallel()

	sampler := NewSampler(42)
	candidates := makeCandidates(t, 3)

	picked := sampler.Sample(candidates, 5)
	require.Len(t, picked, 3)

	seen := make(map[uuid.UUID]bool, len(picked))
	for _, card := range picked {
		seen[card.ID] = true
	}
	for _, card := range candidates {
		assert.True(t, seen[card.ID])
	}
}

func TestSamplerEdgeCounts(t *testing.T) {
	t.Parallel()

	sampler := NewSampler(42)
	candidates := makeCandidates(t, 5)

	assert.Empty(t, sampler.Sample(candidates, 0))
	assert.Empty(t, sampler.Sample(candidates, -1))
	assert.Empty(t, sampler.Sample(nil, 3))
}

func TestSamplerDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	sampler := NewSampler(7)
	candidates := makeCandidates(t, 8)

	original := make([]*domain.Card, len(candidates))
	copy(original, candidates)

	sampler.Sample(candidates, 3)

	for i := range candidates {
		assert.Same(t, original[i], candidates[i])
	}
}

func TestSamplerDeterministicForFixedSeed(t *testing.T) {
	t.Parallel()

	candidates := makeCandidates(t, 20)

	first := NewSampler(99).Sample(candidates, 5)
	second := NewSampler(99).Sample(candidates, 5)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}
