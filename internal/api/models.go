package api

import (
	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user account. The password hash
// never leaves the server.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt string    `json:"created_at"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateCardRequest defines the payload for creating a single card.
type CreateCardRequest struct {
	CardType string `json:"card_type" validate:"required,max=50"`
	Content  string `json:"content"   validate:"required"`
	Notes    string `json:"notes"     validate:"omitempty"`
}

// BatchCreateCardsRequest defines the payload for creating several cards
// in one atomic request.
type BatchCreateCardsRequest struct {
	Cards []CreateCardRequest `json:"cards" validate:"required,min=1,max=100,dive"`
}

// UpdateCardRequest defines the payload for a partial card update.
// Nil fields keep their stored values. omitnil rather than omitempty:
// an explicit empty string must fail min=1 instead of being skipped.
type UpdateCardRequest struct {
	CardType *string `json:"card_type" validate:"omitnil,min=1,max=50"`
	Content  *string `json:"content"   validate:"omitnil,min=1"`
	Notes    *string `json:"notes"`
}

// SettingsRequest defines the payload for creating or updating a user's
// draw settings. Nil fields keep their stored values on update, or take
// the engine defaults on create.
type SettingsRequest struct {
	TypeCounts    map[string]int `json:"type_counts"`
	IntervalCount *int           `json:"interval_count" validate:"omitempty,min=0"`
}

// DrawRequest defines the payload for executing a draw. Both fields are
// optional overrides; omitted fields resolve from the user's stored
// settings, then from the engine defaults.
type DrawRequest struct {
	TypeCounts    map[string]int `json:"type_counts"`
	IntervalCount *int           `json:"interval_count" validate:"omitempty,min=0"`
}

// DrawResponse defines the successful response for the draw endpoint.
type DrawResponse struct {
	Session      *domain.Session           `json:"session"`
	CardsByType  map[string][]*domain.Card `json:"cards_by_type"`
	TotalCards   int                       `json:"total_cards"`
	SettingsUsed domain.DrawSettings       `json:"settings_used"`
}
