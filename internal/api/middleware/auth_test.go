package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Icezero0/Oblivionis/internal/api/middleware"
	"github.com/Icezero0/Oblivionis/internal/service/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "stub-token", nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func runAuth(t *testing.T, svc auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		gotID    uuid.UUID
		idFound  bool
		reached  bool
		handler  = middleware.NewAuthMiddleware(svc)
		nextFunc = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			gotID, idFound = middleware.GetUserID(r)
			w.WriteHeader(http.StatusOK)
		})
	)

	r := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()

	handler.Authenticate(nextFunc).ServeHTTP(w, r)
	_ = reached
	return w, gotID, idFound
}

func TestAuthenticateSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubJWTService{claims: &auth.Claims{
		UserID:    userID,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}}

	w, gotID, found := runAuth(t, svc, "Bearer some-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, found)
	assert.Equal(t, userID, gotID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	w, _, _ := runAuth(t, &stubJWTService{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	w, _, _ := runAuth(t, &stubJWTService{}, "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	w, _, _ := runAuth(t, &stubJWTService{err: auth.ErrExpiredToken}, "Bearer stale")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	w, _, _ := runAuth(t, &stubJWTService{err: auth.ErrInvalidToken}, "Bearer junk")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	_, found := middleware.GetUserID(r)
	assert.False(t, found)
}
