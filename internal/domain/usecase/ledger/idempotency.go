package ledger

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// Guard answers whether a txRef has already been recorded and in which status.
// It is advisory: the unique tx_ref index decides races, and the Mutator re-reads
// the row inside its own unit of work.
type Guard struct {
	transactionRepo persistence.TransactionRepository
}

// NewGuard creates a new Guard
func NewGuard(transactionRepo persistence.TransactionRepository) *Guard {
	return &Guard{
		transactionRepo: transactionRepo,
	}
}

// Lookup returns NotFound (Found=false) or the existing row's status
func (g *Guard) Lookup(ctx context.Context, txRef string) (usecase.LookupResult, error) {
	txn, err := g.transactionRepo.GetByTxRef(ctx, txRef)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return usecase.LookupResult{}, nil
		}
		return usecase.LookupResult{}, fmt.Errorf("failed to look up transaction: %w", err)
	}

	return usecase.LookupResult{Found: true, Status: txn.Status}, nil
}
