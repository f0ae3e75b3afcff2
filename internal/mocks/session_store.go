package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// MockSessionStore implements store.SessionStore for testing. The default
// implementations guard the Sessions map with a mutex so concurrent draws
// can run against one store; custom function fields bypass the lock.
type MockSessionStore struct {
	// Function fields for customizable behavior
	MaxSessionNumberFn func(ctx context.Context) (int64, error)
	InsertFn           func(ctx context.Context, session *domain.Session) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	FindByUserFn       func(ctx context.Context, userID uuid.UUID, since *time.Time) ([]*domain.Session, error)
	CountByUserFn      func(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	mu       sync.Mutex
	Sessions map[uuid.UUID]*domain.Session
}

// NewMockSessionStore creates a new mock store with initialized defaults
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		Sessions: make(map[uuid.UUID]*domain.Session),
	}
}

// Ensure MockSessionStore implements store.SessionStore
var _ store.SessionStore = (*MockSessionStore)(nil)

// MaxSessionNumber implements the SessionStore interface
func (m *MockSessionStore) MaxSessionNumber(ctx context.Context) (int64, error) {
	if m.MaxSessionNumberFn != nil {
		return m.MaxSessionNumberFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var max int64
	for _, session := range m.Sessions {
		if session.SessionNumber > max {
			max = session.SessionNumber
		}
	}
	return max, nil
}

// Insert implements the SessionStore interface
func (m *MockSessionStore) Insert(ctx context.Context, session *domain.Session) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, session)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Sessions {
		if existing.SessionNumber == session.SessionNumber {
			return store.ErrSessionNumberTaken
		}
	}
	m.Sessions[session.ID] = session
	return nil
}

// GetByID implements the SessionStore interface
func (m *MockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.Sessions[id]
	if !exists {
		return nil, store.ErrSessionNotFound
	}
	return session, nil
}

// FindByUser implements the SessionStore interface
func (m *MockSessionStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
	since *time.Time,
) ([]*domain.Session, error) {
	if m.FindByUserFn != nil {
		return m.FindByUserFn(ctx, userID, since)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := []*domain.Session{}
	for _, session := range m.Sessions {
		if session.UserID != userID {
			continue
		}
		if since != nil && session.CreatedAt.Before(*since) {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// CountByUser implements the SessionStore interface
func (m *MockSessionStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountByUserFn != nil {
		return m.CountByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, session := range m.Sessions {
		if session.UserID == userID {
			count++
		}
	}
	return count, nil
}

// Delete implements the SessionStore interface
func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Sessions[id]; !exists {
		return store.ErrSessionNotFound
	}
	delete(m.Sessions, id)
	return nil
}

// WithTx implements the SessionStore interface.
// The mock has no real transactions, so it returns itself.
func (m *MockSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return m
}
