package dto

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// OpenTransactionRequest represents the API request for recording a pending deposit or withdrawal
type OpenTransactionRequest struct {
	TxRef  string `json:"txRef" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Fee    string `json:"fee"`
}

// TransactionResponse represents one ledger transaction
type TransactionResponse struct {
	TxRef       string     `json:"txRef"`
	UserID      string     `json:"userId"`
	Type        string     `json:"type"`
	Amount      string     `json:"amount"`
	Fee         string     `json:"fee"`
	Status      string     `json:"status"`
	Source      string     `json:"source,omitempty"`
	ResolvedBy  string     `json:"resolvedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// TransactionListResponse represents a page of a user's transactions
type TransactionListResponse struct {
	UserID       string                `json:"userId"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// StatusResponse represents the recorded status of a transaction
type StatusResponse struct {
	TxRef  string `json:"txRef"`
	Status string `json:"status"`
}

// FromTransaction converts a transaction entity to its API representation
func FromTransaction(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		TxRef:       t.TxRef,
		UserID:      t.UserID,
		Type:        string(t.Type),
		Amount:      t.Amount(),
		Fee:         t.Fee(),
		Status:      string(t.Status),
		Source:      string(t.Source),
		ResolvedBy:  t.ResolvedBy,
		CreatedAt:   t.CreatedAt,
		ProcessedAt: t.ProcessedAt,
	}
}

// FromTransactions converts a list of transaction entities
func FromTransactions(userID string, txns []*entity.Transaction) TransactionListResponse {
	out := TransactionListResponse{UserID: userID, Count: len(txns), Transactions: make([]TransactionResponse, 0, len(txns))}
	for _, t := range txns {
		out.Transactions = append(out.Transactions, FromTransaction(t))
	}
	return out
}
