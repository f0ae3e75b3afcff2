package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Icezero0/Oblivionis/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
// It receives the context and a transaction, and returns an error if the operation fails.
// The transaction is committed if the function returns nil, or rolled back if it returns an error.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxRunner abstracts the transaction boundary so services can be tested
// without a live database. The production implementation wraps *sql.DB;
// test doubles invoke the function with a nil transaction.
type TxRunner interface {
	// RunInTransaction executes fn inside a transaction with the store's
	// default isolation level.
	RunInTransaction(ctx context.Context, fn TxFn) error

	// RunSerializable executes fn inside a SERIALIZABLE transaction. Used
	// where a read-then-write sequence must not interleave with concurrent
	// writers, such as session-number allocation. A serialization conflict
	// surfaces as ErrSerializationFailure (possibly wrapped).
	RunSerializable(ctx context.Context, fn TxFn) error
}

// sqlTxRunner is the *sql.DB-backed TxRunner used in production.
type sqlTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner over the given database handle.
func NewTxRunner(db *sql.DB) TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}
	return &sqlTxRunner{db: db}
}

// RunInTransaction implements TxRunner.RunInTransaction.
func (r *sqlTxRunner) RunInTransaction(ctx context.Context, fn TxFn) error {
	return runInTransaction(ctx, r.db, nil, fn)
}

// RunSerializable implements TxRunner.RunSerializable.
func (r *sqlTxRunner) RunSerializable(ctx context.Context, fn TxFn) error {
	return runInTransaction(ctx, r.db, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// runInTransaction opens a transaction with the given options, executes fn,
// and commits or rolls back. Rollbacks caused by panics are handled and the
// panic is re-raised.
func runInTransaction(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) error {
	// Get logger from context or use default
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Roll back the transaction if fn panics, then re-panic
	defer func() {
		if p := recover(); p != nil {
			txErr := tx.Rollback()
			if txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	err = fn(ctx, tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			// Return the combined errors to provide complete information
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rollbackErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	err = tx.Commit()
	if err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug("transaction committed successfully")
	return nil
}
