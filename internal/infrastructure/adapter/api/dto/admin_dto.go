package dto

import (
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// OverrideRequest represents an administrator's status override
type OverrideRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed"`
}

// OverrideResponse reports the ledger outcome of an override
type OverrideResponse struct {
	Outcome     string               `json:"outcome"`
	Reason      string               `json:"reason,omitempty"`
	Balance     string               `json:"balance,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// FromApplyResult converts a ledger result to an override response
func FromApplyResult(r *usecase.ApplyResult) OverrideResponse {
	resp := OverrideResponse{Outcome: string(r.Outcome)}
	if r.Reason != nil {
		resp.Reason = r.Reason.Error()
	}
	if r.Transaction != nil {
		t := FromTransaction(r.Transaction)
		resp.Transaction = &t
	}
	if r.Outcome != usecase.OutcomeRejected {
		resp.Balance = entity.AmountInCentsToString(r.BalanceInCents)
	}
	return resp
}

// WebhookEventsResponse lists recent webhook log entries, newest first
type WebhookEventsResponse struct {
	Count  int                    `json:"count"`
	Events []usecase.WebhookEvent `json:"events"`
}
