package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

// CardStore defines the interface for card data persistence.
//
// Eligibility for a draw is NOT computed here: FindByOwner returns the full
// (owner, type) scan and the draw engine filters it against the cooldown.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns validation errors if the card data is invalid, or
	// ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// CreateMultiple saves multiple cards to the store as one unit.
	// IMPORTANT: run this within a transaction (via TxRunner and WithTx) so
	// that either all cards are created or none.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// FindByOwner retrieves all cards belonging to the given owner,
	// optionally restricted to one type tag. An empty cardType means no
	// type filter. Returns an empty slice when nothing matches.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, cardType string) ([]*domain.Card, error)

	// Update modifies an existing card's content, type, and notes.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// RecordAppearances applies the draw engine's statistics mutation to
	// the given cards: appear_count is incremented by one and
	// last_appeared_session set to sessionNumber for every listed ID.
	// IMPORTANT: must be run inside the same transaction as the session
	// insert so the draw unit is all-or-nothing.
	RecordAppearances(ctx context.Context, ids []uuid.UUID, sessionNumber int64) error

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through TxRunner.
	WithTx(tx *sql.Tx) CardStore
}
