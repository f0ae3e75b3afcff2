package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/mocks"
	"github.com/Icezero0/Oblivionis/internal/service/auth"
	"github.com/Icezero0/Oblivionis/internal/store"
)

const validPassword = "a-long-enough-password"

func newUserServiceFixture(t *testing.T) (*mocks.MockUserStore, UserService) {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	svc := NewUserService(userStore, auth.NewBcryptVerifier(), nil)
	return userStore, svc
}

func seedUser(t *testing.T, userStore *mocks.MockUserStore, username, password string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, username+"@example.com", password)
	require.NoError(t, err)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user.HashedPassword = string(hashed)
	user.Password = ""

	userStore.Users[user.ID] = user
	return user
}

func TestRegister(t *testing.T) {
	t.Parallel()

	userStore, svc := newUserServiceFixture(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", validPassword)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Contains(t, userStore.Users, user.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	userStore, svc := newUserServiceFixture(t)
	seedUser(t, userStore, "alice", validPassword)

	_, err := svc.Register(context.Background(), "alice", "other@example.com", validPassword)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
}

func TestRegisterInvalidInput(t *testing.T) {
	t.Parallel()

	_, svc := newUserServiceFixture(t)

	_, err := svc.Register(context.Background(), "bob", "not-an-email", validPassword)
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "bob", "bob@example.com", "short")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userStore, svc := newUserServiceFixture(t)
	seeded := seedUser(t, userStore, "alice", validPassword)

	user, err := svc.Authenticate(context.Background(), "alice", validPassword)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
}

func TestAuthenticateFailures(t *testing.T) {
	t.Parallel()

	userStore, svc := newUserServiceFixture(t)
	seedUser(t, userStore, "alice", validPassword)

	_, err := svc.Authenticate(context.Background(), "alice", "wrong-password-entirely")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", validPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	userStore, svc := newUserServiceFixture(t)
	seeded := seedUser(t, userStore, "alice", validPassword)

	user, err := svc.GetUser(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Username, user.Username)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
