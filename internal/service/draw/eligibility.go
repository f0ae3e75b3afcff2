package draw

import "github.com/Icezero0/Oblivionis/internal/domain"

// FilterEligible returns the cards allowed to appear in the session being
// drawn. A card is eligible when it has never appeared, or when its last
// appearance is at least intervalCount sessions before currentSession.
// currentSession is the number the in-flight session is about to claim,
// so with intervalCount 0 a card drawn last session is immediately
// eligible again.
//
// The input slice is not modified; the result aliases its elements and
// preserves their order.
func FilterEligible(cards []*domain.Card, intervalCount int, currentSession int64) []*domain.Card {
	eligible := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if card.LastAppearedSession == nil {
			eligible = append(eligible, card)
			continue
		}
		if *card.LastAppearedSession <= currentSession-int64(intervalCount) {
			eligible = append(eligible, card)
		}
	}
	return eligible
}
