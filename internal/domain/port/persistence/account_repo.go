package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// AccountRepository defines the balance store
type AccountRepository interface {
	// GetByUserID retrieves the account for a user
	GetByUserID(ctx context.Context, userID string) (*entity.Account, error)

	// EnsureExists provisions a zero-balance account if none exists
	EnsureExists(ctx context.Context, userID string) error

	// ApplyDelta adds delta to the balance in a single conditional write and returns the new balance.
	// Debits that would make the balance negative fail with ErrInsufficientBalance and change nothing.
	ApplyDelta(ctx context.Context, userID string, delta int64) (int64, error)
}
