package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Transition describes a conditional pending -> terminal status change
type Transition struct {
	TxRef      string
	Target     entity.TransactionStatus
	Source     entity.ResolutionSource
	ResolvedBy string
	RawPayload string
	At         time.Time
}

// TransactionRepository defines the transaction store
type TransactionRepository interface {
	// Create inserts a new row. A row with the same TxRef yields ErrDuplicateTransaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByTxRef retrieves a transaction by its gateway reference
	GetByTxRef(ctx context.Context, txRef string) (*entity.Transaction, error)

	// TransitionFromPending moves a pending row to a terminal status.
	// It returns ErrConcurrentUpdate when the row is no longer pending.
	TransitionFromPending(ctx context.Context, transition Transition) error

	// ListByUser returns the user's most recent transactions, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)

	// ListStalePending returns pending rows created before olderThan,
	// least recently checked first
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Transaction, error)

	// MarkChecked records that the gateway was queried for the given pending rows
	MarkChecked(ctx context.Context, txRefs []string, at time.Time) error
}
