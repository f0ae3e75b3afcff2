package analytics

import (
	"fmt"
	"sort"
)

// Advisory severities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Advisory type tags.
const (
	RulePracticeNew      = "practice_new"
	RuleBalanceTypes     = "balance_types"
	RuleIncreasePractice = "increase_practice"
	RuleFocusBasics      = "focus_basics"
)

// advisoryRule inspects the precomputed overview and progress and returns
// an advisory, or nil when the rule does not fire.
type advisoryRule func(overview *Overview, progress *LearningProgress) *Recommendation

// advisoryRules is evaluated in order; the resulting advisory list keeps
// this order.
var advisoryRules = []advisoryRule{
	practiceNewRule,
	balanceTypesRule,
	increasePracticeRule,
	focusBasicsRule,
}

// practiceNewRule fires when any cards have never been drawn.
func practiceNewRule(overview *Overview, _ *LearningProgress) *Recommendation {
	if overview.NeverDrawn <= 0 {
		return nil
	}
	return &Recommendation{
		Type:     RulePracticeNew,
		Priority: PriorityHigh,
		Message: fmt.Sprintf(
			"You have %d cards that were never practiced. Start with this new content first.",
			overview.NeverDrawn,
		),
	}
}

// balanceTypesRule fires when the largest type holds more than twice as
// many cards as the smallest one. Ties on the smallest count resolve to
// the lexicographically first type so the advisory is deterministic.
func balanceTypesRule(overview *Overview, _ *LearningProgress) *Recommendation {
	if len(overview.CardsByType) == 0 {
		return nil
	}

	types := make([]string, 0, len(overview.CardsByType))
	for cardType := range overview.CardsByType {
		types = append(types, cardType)
	}
	sort.Strings(types)

	minType, maxType := types[0], types[0]
	for _, cardType := range types[1:] {
		if overview.CardsByType[cardType] < overview.CardsByType[minType] {
			minType = cardType
		}
		if overview.CardsByType[cardType] > overview.CardsByType[maxType] {
			maxType = cardType
		}
	}

	if overview.CardsByType[maxType] <= overview.CardsByType[minType]*2 {
		return nil
	}
	return &Recommendation{
		Type:     RuleBalanceTypes,
		Priority: PriorityMedium,
		Message: fmt.Sprintf(
			"Add more %q cards to balance the size of each type.",
			minType,
		),
	}
}

// increasePracticeRule fires on low session activity in the trailing week:
// high severity at zero sessions, medium below three.
func increasePracticeRule(overview *Overview, _ *LearningProgress) *Recommendation {
	switch {
	case overview.RecentSessions7d == 0:
		return &Recommendation{
			Type:     RuleIncreasePractice,
			Priority: PriorityHigh,
			Message:  "No practice sessions in the last 7 days. Regular practice keeps recall strong.",
		}
	case overview.RecentSessions7d < 3:
		return &Recommendation{
			Type:     RuleIncreasePractice,
			Priority: PriorityMedium,
			Message:  "Practice frequency is low. Aim for at least 3 to 4 sessions per week.",
		}
	default:
		return nil
	}
}

// focusBasicsRule fires when more than half of the collection is still in
// the beginner bucket. With zero cards the rule is skipped entirely so the
// fraction is never computed against a zero denominator.
func focusBasicsRule(_ *Overview, progress *LearningProgress) *Recommendation {
	if progress.TotalCards == 0 {
		return nil
	}

	beginnerRate := float64(progress.ProficiencyLevels[ProficiencyBeginner]) /
		float64(progress.TotalCards) * 100
	if beginnerRate <= 50 {
		return nil
	}
	return &Recommendation{
		Type:     RuleFocusBasics,
		Priority: PriorityHigh,
		Message: fmt.Sprintf(
			"%.1f%% of your cards have not been practiced yet. Focus on the basics first.",
			beginnerRate,
		),
	}
}
