package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
// It saves a new card to the database, handling domain validation.
// Returns store.ErrUserNotFound if the owner row no longer exists.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards
			(id, owner_id, card_type, content, notes,
			 appear_count, last_appeared_session, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.OwnerID,
		card.CardType,
		card.Content,
		card.Notes,
		card.AppearCount,
		card.LastAppearedSession,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("owner_id", card.OwnerID.String()))
		// The only foreign key on cards is owner_id, so a violation means
		// the owner row is gone, not that the card data is malformed.
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner no longer exists: %v", store.ErrUserNotFound, err)
		}
		return MapError(err)
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("owner_id", card.OwnerID.String()),
		slog.String("card_type", card.CardType))
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
// It saves multiple cards; run it inside a transaction (via WithTx) so the
// batch is atomic. Returns validation errors if any card data is invalid.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return err
		}
	}

	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			return err
		}
	}

	log.Debug("card batch created", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID
// It retrieves a card by its unique ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, card_type, content, notes,
		       appear_count, last_appeared_session, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// FindByOwner implements store.CardStore.FindByOwner
// It retrieves all cards belonging to the owner, optionally restricted to a
// single type tag. Returns an empty slice if no cards match.
func (s *PostgresCardStore) FindByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	cardType string,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, card_type, content, notes,
		       appear_count, last_appeared_session, created_at, updated_at
		FROM cards
		WHERE owner_id = $1
		  AND ($2 = '' OR card_type = $2)
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, cardType)
	if err != nil {
		log.Error("failed to query cards by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("card_type", cardType))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row",
				slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found cards by owner",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_type", cardType),
		slog.Int("count", len(cards)))
	return cards, nil
}

// Update implements store.CardStore.Update
// It modifies an existing card's content, type, and notes. The draw
// statistics columns are written as-is from the entity; only the draw
// engine changes them, via RecordAppearances.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET card_type = $1, content = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		card.CardType,
		card.Content,
		card.Notes,
		time.Now().UTC(),
		card.ID,
	)

	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("card not found for update",
			slog.String("card_id", card.ID.String()))
		return store.ErrCardNotFound
	}

	log.Debug("card updated", slog.String("card_id", card.ID.String()))
	return nil
}

// RecordAppearances implements store.CardStore.RecordAppearances
// It bumps appear_count and stamps last_appeared_session for every listed
// card. Must run inside the same transaction as the session insert so the
// draw unit stays all-or-nothing.
func (s *PostgresCardStore) RecordAppearances(
	ctx context.Context,
	ids []uuid.UUID,
	sessionNumber int64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE cards
		SET appear_count = appear_count + 1,
		    last_appeared_session = $1,
		    updated_at = $2
		WHERE id = $3
	`

	now := time.Now().UTC()
	for _, id := range ids {
		result, err := s.db.ExecContext(ctx, query, sessionNumber, now, id)
		if err != nil {
			log.Error("failed to record card appearance",
				slog.String("error", err.Error()),
				slog.String("card_id", id.String()),
				slog.Int64("session_number", sessionNumber))
			return MapError(err)
		}
		if err := CheckRowsAffected(result, "card"); err != nil {
			log.Error("drawn card vanished during statistics update",
				slog.String("card_id", id.String()),
				slog.Int64("session_number", sessionNumber))
			return err
		}
	}

	log.Debug("recorded card appearances",
		slog.Int("count", len(ids)),
		slog.Int64("session_number", sessionNumber))
	return nil
}

// Delete implements store.CardStore.Delete
// It removes a card from the store by its ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		log.Debug("card not found for delete", slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Debug("card deleted", slog.String("card_id", id.String()))
	return nil
}

// WithTx implements store.CardStore.WithTx
// It returns a new CardStore running all statements on the given transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var lastSession sql.NullInt64

	err := row.Scan(
		&card.ID,
		&card.OwnerID,
		&card.CardType,
		&card.Content,
		&card.Notes,
		&card.AppearCount,
		&lastSession,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastSession.Valid {
		card.LastAppearedSession = &lastSession.Int64
	}

	return &card, nil
}
