package draw

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

func newTestCard(t *testing.T, cardType string, lastAppeared *int64) *domain.Card {
	t.Helper()

	card, err := domain.NewCard(uuid.New(), cardType, "content", "")
	require.NoError(t, err)

	if lastAppeared != nil {
		card.RecordAppearance(*lastAppeared)
	}
	return card
}

func int64Ptr(v int64) *int64 { return &v }

func TestFilterEligible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		lastAppeared   *int64
		intervalCount  int
		currentSession int64
		wantEligible   bool
	}{
		{
			name:           "never appeared is always eligible",
			lastAppeared:   nil,
			intervalCount:  100,
			currentSession: 1,
			wantEligible:   true,
		},
		{
			name:           "exactly at cooldown boundary is eligible",
			lastAppeared:   int64Ptr(3),
			intervalCount:  2,
			currentSession: 5,
			wantEligible:   true,
		},
		{
			name:           "one session inside cooldown is not eligible",
			lastAppeared:   int64Ptr(4),
			intervalCount:  2,
			currentSession: 5,
			wantEligible:   false,
		},
		{
			name:           "well past cooldown is eligible",
			lastAppeared:   int64Ptr(1),
			intervalCount:  2,
			currentSession: 10,
			wantEligible:   true,
		},
		{
			name:           "zero interval allows immediate reappearance",
			lastAppeared:   int64Ptr(4),
			intervalCount:  0,
			currentSession: 5,
			wantEligible:   true,
		},
		{
			name:           "previous session blocked by interval one",
			lastAppeared:   int64Ptr(4),
			intervalCount:  1,
			currentSession: 5,
			wantEligible:   false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			card := newTestCard(t, "M", tc.lastAppeared)
			eligible := FilterEligible([]*domain.Card{card}, tc.intervalCount, tc.currentSession)

			if tc.wantEligible {
				assert.Len(t, eligible, 1)
			} else {
				assert.Empty(t, eligible)
			}
		})
	}
}

func TestFilterEligiblePreservesOrderAndInput(t *testing.T) {
	t.Parallel()

	fresh1 := newTestCard(t, "M", nil)
	cooling := newTestCard(t, "M", int64Ptr(5))
	fresh2 := newTestCard(t, "M", nil)
	rested := newTestCard(t, "M", int64Ptr(1))

	input := []*domain.Card{fresh1, cooling, fresh2, rested}
	eligible := FilterEligible(input, 2, 6)

	require.Len(t, eligible, 3)
	assert.Same(t, fresh1, eligible[0])
	assert.Same(t, fresh2, eligible[1])
	assert.Same(t, rested, eligible[2])
	assert.Len(t, input, 4)
}

func TestFilterEligibleEmptyInput(t *testing.T) {
	t.Parallel()

	eligible := FilterEligible(nil, 2, 1)
	assert.NotNil(t, eligible)
	assert.Empty(t, eligible)
}
