package usecase

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Outcome is the result class of a ledger mutation
type Outcome string

// Outcomes reported by the ledger and the paths that drive it
const (
	OutcomeApplied        Outcome = "applied"
	OutcomeAlreadyApplied Outcome = "already_applied"
	OutcomeRejected       Outcome = "rejected"
	OutcomeIgnored        Outcome = "ignored"
)

// ApplyRequest asks the ledger to move txRef to TargetStatus
type ApplyRequest struct {
	TxRef         string
	UserID        string
	Type          entity.TransactionType
	AmountInCents int64
	FeeInCents    int64
	TargetStatus  entity.TransactionStatus
	Source        entity.ResolutionSource
	ResolvedBy    string
	RawPayload    string
}

// LogFields returns the request fields for structured logging
func (r ApplyRequest) LogFields() map[string]any {
	return map[string]any{
		"tx_ref":        r.TxRef,
		"user_id":       r.UserID,
		"type":          string(r.Type),
		"amount":        entity.AmountInCentsToString(r.AmountInCents),
		"fee":           entity.AmountInCentsToString(r.FeeInCents),
		"target_status": string(r.TargetStatus),
		"source":        string(r.Source),
	}
}

// ApplyResult reports what the ledger did with an ApplyRequest.
// Reason is set for rejected requests only.
type ApplyResult struct {
	Outcome        Outcome
	Reason         error
	Transaction    *entity.Transaction
	BalanceInCents int64
}

// LookupResult is the idempotency guard's answer for a txRef
type LookupResult struct {
	Found  bool
	Status entity.TransactionStatus
}

// OpenRequest records a pending transaction before the gateway settles it
type OpenRequest struct {
	TxRef  string
	UserID string
	Type   entity.TransactionType
	Amount string
	Fee    string
}

// LedgerMutator is the single entry point allowed to change balances
type LedgerMutator interface {
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)
}

// LedgerUseCase exposes the ledger to the API layer
type LedgerUseCase interface {
	// OpenTransaction records a pending deposit or withdrawal
	OpenTransaction(ctx context.Context, req OpenRequest) (*entity.Transaction, error)

	// GetBalance returns the user's account
	GetBalance(ctx context.Context, userID string) (*entity.Account, error)

	// ListTransactions returns the user's most recent transactions
	ListTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)

	// GetStatus returns the status recorded for txRef
	GetStatus(ctx context.Context, txRef string) (entity.TransactionStatus, error)
}
