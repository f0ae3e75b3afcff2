package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/mocks"
	"github.com/Icezero0/Oblivionis/internal/store"
)

func newSessionServiceFixture(t *testing.T) (*mocks.MockSessionStore, SessionService) {
	t.Helper()

	sessionStore := mocks.NewMockSessionStore()
	return sessionStore, NewSessionService(sessionStore, nil)
}

func seedSession(
	t *testing.T,
	sessionStore *mocks.MockSessionStore,
	userID uuid.UUID,
	number int64,
) *domain.Session {
	t.Helper()

	session, err := domain.NewSession(userID, number, domain.DrawSettings{
		TypeCounts:    map[string]int{"M": 2},
		IntervalCount: 2,
	})
	require.NoError(t, err)
	session.CreatedAt = time.Now().UTC().Add(time.Duration(number) * time.Minute)
	sessionStore.Sessions[session.ID] = session
	return session
}

func TestListSessionsOrderAndPagination(t *testing.T) {
	t.Parallel()

	sessionStore, svc := newSessionServiceFixture(t)
	userID := uuid.New()
	for i := int64(1); i <= 5; i++ {
		seedSession(t, sessionStore, userID, i)
	}

	page, err := svc.ListSessions(context.Background(), userID, 0, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, int64(5), page[0].SessionNumber)
	assert.Equal(t, int64(3), page[2].SessionNumber)

	rest, err := svc.ListSessions(context.Background(), userID, 3, 10)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, int64(2), rest[0].SessionNumber)
}

func TestGetSessionOwnership(t *testing.T) {
	t.Parallel()

	sessionStore, svc := newSessionServiceFixture(t)
	userID := uuid.New()
	session := seedSession(t, sessionStore, userID, 1)

	got, err := svc.GetSession(context.Background(), userID, session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = svc.GetSession(context.Background(), uuid.New(), session.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	_, err = svc.GetSession(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()

	sessionStore, svc := newSessionServiceFixture(t)
	userID := uuid.New()
	session := seedSession(t, sessionStore, userID, 1)

	assert.ErrorIs(t,
		svc.DeleteSession(context.Background(), uuid.New(), session.ID),
		ErrNotOwned)

	require.NoError(t, svc.DeleteSession(context.Background(), userID, session.ID))
	assert.NotContains(t, sessionStore.Sessions, session.ID)
}

func TestExportSessions(t *testing.T) {
	t.Parallel()

	sessionStore, svc := newSessionServiceFixture(t)
	userID := uuid.New()
	for i := int64(3); i >= 1; i-- {
		seedSession(t, sessionStore, userID, i)
	}

	export, err := svc.ExportSessions(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, export.UserID)
	assert.Equal(t, 3, export.TotalSessions)
	require.Len(t, export.Sessions, 3)
	assert.Equal(t, int64(1), export.Sessions[0].SessionNumber)
	assert.Equal(t, int64(3), export.Sessions[2].SessionNumber)

	_, err = time.Parse(time.RFC3339, export.ExportDate)
	assert.NoError(t, err)
	_, err = time.Parse(time.RFC3339, export.Sessions[0].Date)
	assert.NoError(t, err)
}

func TestExportSessionsEmptyHistory(t *testing.T) {
	t.Parallel()

	_, svc := newSessionServiceFixture(t)

	export, err := svc.ExportSessions(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, export.TotalSessions)
	assert.Empty(t, export.Sessions)
}
