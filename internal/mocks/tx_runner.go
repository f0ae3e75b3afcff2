package mocks

import (
	"context"
	"sync"

	"github.com/Icezero0/Oblivionis/internal/store"
)

// MockTxRunner implements store.TxRunner for testing. By default it invokes
// the function with a nil transaction; the mock stores return themselves
// from WithTx(nil), so service-level logic can be exercised without a
// database.
type MockTxRunner struct {
	// Function fields for customizable behavior
	RunInTransactionFn func(ctx context.Context, fn store.TxFn) error
	RunSerializableFn  func(ctx context.Context, fn store.TxFn) error

	// SerializableCalls counts RunSerializable invocations, which is how
	// draw retry behavior is observed in tests. Read it only after all
	// concurrent callers have returned.
	mu                sync.Mutex
	SerializableCalls int
}

// NewMockTxRunner creates a new mock transaction runner
func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

// Ensure MockTxRunner implements store.TxRunner
var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTransaction implements the TxRunner interface
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if m.RunInTransactionFn != nil {
		return m.RunInTransactionFn(ctx, fn)
	}
	return fn(ctx, nil)
}

// RunSerializable implements the TxRunner interface
func (m *MockTxRunner) RunSerializable(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	m.SerializableCalls++
	m.mu.Unlock()
	if m.RunSerializableFn != nil {
		return m.RunSerializableFn(ctx, fn)
	}
	return fn(ctx, nil)
}
