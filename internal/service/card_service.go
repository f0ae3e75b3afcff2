package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// CardUpdate carries the mutable fields of a card. Nil pointers leave the
// current value in place.
type CardUpdate struct {
	CardType *string
	Content  *string
	Notes    *string
}

// CardService provides card-related operations. Every read or write that
// names a card enforces that the caller owns it.
type CardService interface {
	// CreateCard validates and stores a single new card for the owner.
	CreateCard(ctx context.Context, ownerID uuid.UUID, cardType, content, notes string) (*domain.Card, error)

	// CreateCards stores a batch of up to MaxBatchSize cards atomically:
	// either the whole batch is persisted or nothing is.
	CreateCards(ctx context.Context, ownerID uuid.UUID, cards []*domain.Card) error

	// ListCards returns the owner's cards, optionally filtered by type,
	// with offset/limit pagination applied after filtering.
	ListCards(ctx context.Context, ownerID uuid.UUID, cardType string, skip, limit int) ([]*domain.Card, error)

	// GetCard retrieves one card. Returns ErrNotOwned when the card exists
	// but belongs to someone else.
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// UpdateCard applies the non-nil fields of the update to the card.
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, update CardUpdate) (*domain.Card, error)

	// DeleteCard removes the card. Draw history referencing it is kept.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cardStore store.CardStore
	txRunner  store.TxRunner
	logger    *slog.Logger
}

// Ensure cardServiceImpl implements CardService
var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a new CardService.
func NewCardService(
	cardStore store.CardStore,
	txRunner store.TxRunner,
	logger *slog.Logger,
) CardService {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		txRunner:  txRunner,
		logger:    logger.With(slog.String("component", "card_service")),
	}
}

// CreateCard implements CardService.CreateCard.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	ownerID uuid.UUID,
	cardType, content, notes string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(ownerID, cardType, content, notes)
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewCardServiceError("create", "failed to store card", err)
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return card, nil
}

// CreateCards implements CardService.CreateCards.
func (s *cardServiceImpl) CreateCards(
	ctx context.Context,
	ownerID uuid.UUID,
	cards []*domain.Card,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return ErrEmptyBatch
	}
	if len(cards) > MaxBatchSize {
		return fmt.Errorf("%w: %d cards", ErrBatchTooLarge, len(cards))
	}

	for _, card := range cards {
		if card.OwnerID != ownerID {
			return ErrNotOwned
		}
		if err := card.Validate(); err != nil {
			return err
		}
	}

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		log.Error("failed to create card batch",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.Int("count", len(cards)))
		return NewCardServiceError("create_batch", "failed to store card batch", err)
	}

	log.Debug("card batch created",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(cards)))
	return nil
}

// ListCards implements CardService.ListCards.
func (s *cardServiceImpl) ListCards(
	ctx context.Context,
	ownerID uuid.UUID,
	cardType string,
	skip, limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.FindByOwner(ctx, ownerID, cardType)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewCardServiceError("list", "failed to load cards", err)
	}

	if skip < 0 {
		skip = 0
	}
	if skip >= len(cards) {
		return []*domain.Card{}, nil
	}
	cards = cards[skip:]
	if limit > 0 && limit < len(cards) {
		cards = cards[:limit]
	}
	return cards, nil
}

// GetCard implements CardService.GetCard.
func (s *cardServiceImpl) GetCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.OwnerID != userID {
		return nil, ErrNotOwned
	}
	return card, nil
}

// UpdateCard implements CardService.UpdateCard.
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	update CardUpdate,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if update.CardType != nil {
		card.CardType = *update.CardType
	}
	if update.Content != nil {
		card.Content = *update.Content
	}
	if update.Notes != nil {
		card.Notes = *update.Notes
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewCardServiceError("update", "failed to store card update", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetCard(ctx, userID, cardID); err != nil {
		return err
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return NewCardServiceError("delete", "failed to delete card", err)
	}

	log.Debug("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
