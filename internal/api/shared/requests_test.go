package shared_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Icezero0/Oblivionis/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(
		http.MethodPost,
		"/api/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com"}`),
	)

	var dst decodeTarget
	require.NoError(t, shared.DecodeJSON(r, &dst))
	assert.Equal(t, "alice", dst.Username)
	assert.Equal(t, "alice@example.com", dst.Email)
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(
		http.MethodPost,
		"/api/auth/register",
		strings.NewReader(`{"username":"alice","email":"a@b.co","extra":true}`),
	)

	var dst decodeTarget
	err := shared.DecodeJSON(r, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request body")
}

func TestDecodeJSONMalformedBody(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{"))

	var dst decodeTarget
	assert.Error(t, shared.DecodeJSON(r, &dst))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	valid := decodeTarget{Username: "alice", Email: "alice@example.com"}
	assert.NoError(t, shared.ValidateRequest(valid))

	invalid := decodeTarget{Username: "al", Email: "not-an-email"}
	err := shared.ValidateRequest(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
