package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// MaxTxRefLength bounds the gateway reference stored in the unique column
const MaxTxRefLength = 255

// TransactionType represents the direction of a transaction
type TransactionType string

// Transaction types
const (
	TypeDeposit    TransactionType = "Deposit"
	TypeWithdrawal TransactionType = "Withdrawal"
)

// ParseTransactionType accepts the gateway's spelling of a type in any letter case
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return TypeDeposit, nil
	case "withdrawal", "withdraw":
		return TypeWithdrawal, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownTransactionType, s)
	}
}

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// ParseTransactionStatus parses one of the three ledger statuses
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusFailed:
		return StatusFailed, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidStatus, s)
	}
}

// IsTerminal reports whether no further transition is possible
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether the state machine allows s -> target.
// Only pending -> completed and pending -> failed are legal.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	return s == StatusPending && target.IsTerminal()
}

// ResolutionSource records which path produced the row's current status
type ResolutionSource string

// Resolution sources
const (
	SourceClient         ResolutionSource = "client"
	SourceWebhook        ResolutionSource = "webhook"
	SourceReconciliation ResolutionSource = "reconciliation"
	SourceOverride       ResolutionSource = "override"
)

// Transaction is one gateway payment attempt identified by TxRef
type Transaction struct {
	ID            uint64            // Store-assigned identifier
	TxRef         string            // Gateway reference, unique
	UserID        string            // Owning user
	Type          TransactionType   // Deposit or Withdrawal
	AmountInCents int64             // Amount in cents
	FeeInCents    int64             // Fee in cents, charged on withdrawals only
	Status        TransactionStatus // pending, completed or failed
	Source        ResolutionSource  // Path that created or last resolved the row
	ResolvedBy    string            // Administrator name for overrides
	RawPayload    string            // Snapshot of the triggering gateway payload
	CreatedAt     time.Time         // Creation timestamp
	ProcessedAt   *time.Time        // When the row left pending (nullable)
	LastCheckedAt *time.Time        // Last gateway status query by reconciliation (nullable)
}

// NewTransaction validates the inputs and builds a transaction in the given status
func NewTransaction(
	txRef string,
	userID string,
	txType TransactionType,
	amountInCents int64,
	feeInCents int64,
	status TransactionStatus,
	now time.Time,
) (*Transaction, error) {
	if err := ValidateTxRef(txRef); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if txType != TypeDeposit && txType != TypeWithdrawal {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownTransactionType, txType)
	}
	if amountInCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	if feeInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}
	if _, err := ParseTransactionStatus(string(status)); err != nil {
		return nil, err
	}

	t := &Transaction{
		TxRef:         txRef,
		UserID:        userID,
		Type:          txType,
		AmountInCents: amountInCents,
		FeeInCents:    feeInCents,
		Status:        status,
		CreatedAt:     now,
	}
	if status.IsTerminal() {
		t.ProcessedAt = &now
	}
	return t, nil
}

// ValidateTxRef checks the reference is usable as the deduplication key
func ValidateTxRef(txRef string) error {
	if strings.TrimSpace(txRef) == "" {
		return errs.ErrInvalidTransactionRef
	}
	if len(txRef) > MaxTxRefLength {
		return fmt.Errorf("%w: longer than %d characters", errs.ErrInvalidTransactionRef, MaxTxRefLength)
	}
	return nil
}

// BalanceDelta is the signed change a completed transaction applies to the owner's balance.
// Deposits credit the amount; withdrawals debit the amount plus the fee.
func (t *Transaction) BalanceDelta() int64 {
	if t.Type == TypeWithdrawal {
		return -(t.AmountInCents + t.FeeInCents)
	}
	return t.AmountInCents
}

// Amount returns the amount as a string with 2 decimal places
func (t *Transaction) Amount() string {
	return AmountInCentsToString(t.AmountInCents)
}

// Fee returns the fee as a string with 2 decimal places
func (t *Transaction) Fee() string {
	return AmountInCentsToString(t.FeeInCents)
}

// LogFields returns the identifying fields of the transaction for structured logging
func (t *Transaction) LogFields() map[string]any {
	return map[string]any{
		"tx_ref":  t.TxRef,
		"user_id": t.UserID,
		"type":    string(t.Type),
		"amount":  t.Amount(),
		"fee":     t.Fee(),
		"status":  string(t.Status),
	}
}
