package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeNewRule(t *testing.T) {
	t.Parallel()

	fired := practiceNewRule(&Overview{NeverDrawn: 4}, nil)
	require.NotNil(t, fired)
	assert.Equal(t, RulePracticeNew, fired.Type)
	assert.Equal(t, PriorityHigh, fired.Priority)
	assert.Contains(t, fired.Message, "4")

	assert.Nil(t, practiceNewRule(&Overview{NeverDrawn: 0}, nil))
}

func TestBalanceTypesRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cardsByType map[string]int
		wantFired   bool
		wantType    string
	}{
		{
			name:        "no types",
			cardsByType: map[string]int{},
			wantFired:   false,
		},
		{
			name:        "single type never fires",
			cardsByType: map[string]int{"M": 10},
			wantFired:   false,
		},
		{
			name:        "exactly double does not fire",
			cardsByType: map[string]int{"M": 4, "N": 2},
			wantFired:   false,
		},
		{
			name:        "more than double fires naming the small type",
			cardsByType: map[string]int{"M": 5, "N": 2},
			wantFired:   true,
			wantType:    "N",
		},
		{
			name:        "smallest count tie resolves lexicographically",
			cardsByType: map[string]int{"M": 9, "A": 2, "B": 2},
			wantFired:   true,
			wantType:    "A",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := balanceTypesRule(&Overview{CardsByType: tc.cardsByType}, nil)
			if !tc.wantFired {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, RuleBalanceTypes, rec.Type)
			assert.Equal(t, PriorityMedium, rec.Priority)
			assert.Contains(t, rec.Message, tc.wantType)
		})
	}
}

func TestIncreasePracticeRule(t *testing.T) {
	t.Parallel()

	zero := increasePracticeRule(&Overview{RecentSessions7d: 0}, nil)
	require.NotNil(t, zero)
	assert.Equal(t, PriorityHigh, zero.Priority)

	low := increasePracticeRule(&Overview{RecentSessions7d: 2}, nil)
	require.NotNil(t, low)
	assert.Equal(t, PriorityMedium, low.Priority)

	assert.Nil(t, increasePracticeRule(&Overview{RecentSessions7d: 3}, nil))
}

func TestFocusBasicsRule(t *testing.T) {
	t.Parallel()

	fired := focusBasicsRule(nil, &LearningProgress{
		TotalCards:        4,
		ProficiencyLevels: map[string]int{ProficiencyBeginner: 3},
	})
	require.NotNil(t, fired)
	assert.Equal(t, RuleFocusBasics, fired.Type)
	assert.Equal(t, PriorityHigh, fired.Priority)
	assert.Contains(t, fired.Message, "75.0%")

	assert.Nil(t, focusBasicsRule(nil, &LearningProgress{
		TotalCards:        4,
		ProficiencyLevels: map[string]int{ProficiencyBeginner: 2},
	}))
}

func TestFocusBasicsRuleSkippedWithoutCards(t *testing.T) {
	t.Parallel()

	rec := focusBasicsRule(nil, &LearningProgress{
		TotalCards:        0,
		ProficiencyLevels: map[string]int{ProficiencyBeginner: 0},
	})
	assert.Nil(t, rec)
}

func TestRecommendationsOrderAndCount(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture(t)
	userID := uuid.New()

	// Collection built so every rule fires: never-drawn cards, a skewed
	// type distribution, no recent sessions, and a beginner-heavy ladder.
	for i := 0; i < 5; i++ {
		f.seedCard(t, userID, "M", "m", 0)
	}
	f.seedCard(t, userID, "N", "n", 1)

	result, err := f.service.Recommendations(context.Background(), userID)
	require.NoError(t, err)

	require.Equal(t, 4, result.TotalRecommendations)
	assert.Equal(t, RulePracticeNew, result.Recommendations[0].Type)
	assert.Equal(t, RuleBalanceTypes, result.Recommendations[1].Type)
	assert.Equal(t, RuleIncreasePractice, result.Recommendations[2].Type)
	assert.Equal(t, RuleFocusBasics, result.Recommendations[3].Type)
}

func TestRecommendationsEmptyUserYieldsPracticeAdviceOnly(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture(t)

	result, err := f.service.Recommendations(context.Background(), uuid.New())
	require.NoError(t, err)

	// No cards: rules 1, 2, and 4 stay silent; only the practice
	// frequency advisory fires.
	require.Equal(t, 1, result.TotalRecommendations)
	assert.Equal(t, RuleIncreasePractice, result.Recommendations[0].Type)
	assert.Equal(t, PriorityHigh, result.Recommendations[0].Priority)
}

func TestRecommendationsQuietWhenHealthy(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture(t)
	userID := uuid.New()
	now := time.Now().UTC()

	f.seedCard(t, userID, "M", "a", 3)
	f.seedCard(t, userID, "M", "b", 2)
	f.seedCard(t, userID, "N", "c", 4)
	for i := 1; i <= 3; i++ {
		f.seedSession(t, userID, int64(i), now.AddDate(0, 0, -i), map[string]int{"M": 1})
	}

	result, err := f.service.Recommendations(context.Background(), userID)
	require.NoError(t, err)

	assert.Zero(t, result.TotalRecommendations)
	assert.Empty(t, result.Recommendations)
}
