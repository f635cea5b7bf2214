package mocks

import (
	"context"

	"github.com/rcooper/taskflow-api/internal/store"
)

// MockTransactor implements store.Transactor for testing. The default
// behavior runs the function with a nil transaction; the store mocks
// ignore WithTx so the nil handle is never dereferenced.
type MockTransactor struct {
	RunInTransactionFn func(ctx context.Context, fn store.TxFn) error

	// BeginError is returned before the function runs when set, simulating
	// a failure to open the transaction.
	BeginError error

	// Calls counts how many transactions were started.
	Calls int
}

// NewMockTransactor creates a new mock transactor
func NewMockTransactor() *MockTransactor {
	return &MockTransactor{}
}

var _ store.Transactor = (*MockTransactor)(nil)

// RunInTransaction implements the Transactor interface
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunInTransactionFn != nil {
		return m.RunInTransactionFn(ctx, fn)
	}
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(ctx, nil)
}
