package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors. Each wraps ErrValidation so callers can
// classify any of them with a single errors.Is check.
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardOwnerIDEmpty is returned when a card's owner ID is empty or nil.
	ErrCardOwnerIDEmpty = fmt.Errorf("%w: card owner ID cannot be empty", ErrValidation)

	// ErrCardTypeEmpty is returned when a card's type tag is empty.
	ErrCardTypeEmpty = fmt.Errorf("%w: card type cannot be empty", ErrValidation)

	// ErrCardContentEmpty is returned when a card's content is empty.
	ErrCardContentEmpty = fmt.Errorf("%w: card content cannot be empty", ErrValidation)

	// ErrCardStatsInconsistent is returned when a card's draw statistics
	// violate the appear-count/last-session invariant.
	ErrCardStatsInconsistent = fmt.Errorf(
		"%w: card appear count and last appeared session are inconsistent", ErrValidation)
)

// Card represents a single memory card owned by a user. The type tag is an
// open-ended category code (e.g. "M", "N"); new categories appear without
// schema changes, so it is kept as an opaque string and only checked for
// non-emptiness.
//
// AppearCount and LastAppearedSession are derived statistics mutated only
// by the draw engine. Invariant: AppearCount == 0 exactly when
// LastAppearedSession is nil (the card has never been drawn).
type Card struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner_id"`
	CardType            string    `json:"card_type"`
	Content             string    `json:"content"`
	Notes               string    `json:"notes,omitempty"`
	AppearCount         int       `json:"appear_count"`
	LastAppearedSession *int64    `json:"last_appeared_session,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewCard creates a new Card with the given owner, type tag, content, and
// optional notes. It generates a new UUID for the card ID, sets the
// creation/update timestamps, and starts with zero draw statistics.
// Returns an error if validation fails.
func NewCard(ownerID uuid.UUID, cardType, content, notes string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CardType:  cardType,
		Content:   content,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrCardOwnerIDEmpty
	}

	if c.CardType == "" {
		return ErrCardTypeEmpty
	}

	if c.Content == "" {
		return ErrCardContentEmpty
	}

	if c.AppearCount < 0 {
		return ErrCardStatsInconsistent
	}

	// AppearCount == 0 exactly when the card has never been drawn
	if (c.AppearCount == 0) != (c.LastAppearedSession == nil) {
		return ErrCardStatsInconsistent
	}

	return nil
}

// RecordAppearance marks the card as drawn in the given session: the appear
// count is incremented and the last appeared session is replaced. The
// UpdatedAt timestamp is refreshed.
func (c *Card) RecordAppearance(sessionNumber int64) {
	c.AppearCount++
	c.LastAppearedSession = &sessionNumber
	c.UpdatedAt = time.Now().UTC()
}
