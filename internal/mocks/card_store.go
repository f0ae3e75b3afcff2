package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// MockCardStore implements store.CardStore for testing. The default
// implementations guard the Cards map with a mutex so concurrent draws
// can run against one store; custom function fields bypass the lock.
type MockCardStore struct {
	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, card *domain.Card) error
	CreateMultipleFn    func(ctx context.Context, cards []*domain.Card) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByOwnerFn       func(ctx context.Context, ownerID uuid.UUID, cardType string) ([]*domain.Card, error)
	UpdateFn            func(ctx context.Context, card *domain.Card) error
	RecordAppearancesFn func(ctx context.Context, ids []uuid.UUID, sessionNumber int64) error
	DeleteFn            func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	mu    sync.Mutex
	Cards map[uuid.UUID]*domain.Card
}

// NewMockCardStore creates a new mock store with initialized defaults
func NewMockCardStore() *MockCardStore {
	return &MockCardStore{
		Cards: make(map[uuid.UUID]*domain.Card),
	}
}

// Ensure MockCardStore implements store.CardStore
var _ store.CardStore = (*MockCardStore)(nil)

// Create implements the CardStore interface
func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.createLocked(card)
}

func (m *MockCardStore) createLocked(card *domain.Card) error {
	if _, exists := m.Cards[card.ID]; exists {
		return store.ErrDuplicate
	}
	m.Cards[card.ID] = card
	return nil
}

// CreateMultiple implements the CardStore interface
func (m *MockCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, cards)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, card := range cards {
		if err := m.createLocked(card); err != nil {
			return err
		}
	}
	return nil
}

// GetByID implements the CardStore interface
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	card, exists := m.Cards[id]
	if !exists {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

// FindByOwner implements the CardStore interface
func (m *MockCardStore) FindByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	cardType string,
) ([]*domain.Card, error) {
	if m.FindByOwnerFn != nil {
		return m.FindByOwnerFn(ctx, ownerID, cardType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cards := []*domain.Card{}
	for _, card := range m.Cards {
		if card.OwnerID != ownerID {
			continue
		}
		if cardType != "" && card.CardType != cardType {
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Update implements the CardStore interface
func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, card)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Cards[card.ID]; !exists {
		return store.ErrCardNotFound
	}
	m.Cards[card.ID] = card
	return nil
}

// RecordAppearances implements the CardStore interface
func (m *MockCardStore) RecordAppearances(
	ctx context.Context,
	ids []uuid.UUID,
	sessionNumber int64,
) error {
	if m.RecordAppearancesFn != nil {
		return m.RecordAppearancesFn(ctx, ids, sessionNumber)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		if _, exists := m.Cards[id]; !exists {
			return store.ErrCardNotFound
		}
	}
	return nil
}

// Delete implements the CardStore interface
func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Cards[id]; !exists {
		return store.ErrCardNotFound
	}
	delete(m.Cards, id)
	return nil
}

// WithTx implements the CardStore interface.
// The mock has no real transactions, so it returns itself.
func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}
