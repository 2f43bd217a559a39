package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// Account holds a user's wallet balance. Rows are provisioned lazily with a zero balance
// the first time the ledger touches the user.
type Account struct {
	UserID         string    // Owning user
	BalanceInCents int64     // Balance stored in cents
	CreatedAt      time.Time // When the account was provisioned
	UpdatedAt      time.Time // Last balance change
}

// NewAccount creates an empty account for userID
func NewAccount(userID string, now time.Time) (*Account, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	return &Account{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetBalance returns the balance as a string with 2 decimal places
func (a *Account) GetBalance() string {
	return AmountInCentsToString(a.BalanceInCents)
}

// CanCover reports whether a debit of amountInCents leaves the balance non-negative
func (a *Account) CanCover(amountInCents int64) bool {
	return a.BalanceInCents >= amountInCents
}
