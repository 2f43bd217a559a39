package entity

import "strings"

// PaymentState is the gateway's verdict on a payment, reduced to what the ledger acts on
type PaymentState string

// Payment states
const (
	PaymentSucceeded PaymentState = "succeeded"
	PaymentFailed    PaymentState = "failed"
	PaymentPending   PaymentState = "pending"
	PaymentUnknown   PaymentState = "unknown"
)

var gatewayStatuses = map[string]PaymentState{
	"success":    PaymentSucceeded,
	"successful": PaymentSucceeded,
	"succeeded":  PaymentSucceeded,
	"completed":  PaymentSucceeded,
	"paid":       PaymentSucceeded,
	"failed":     PaymentFailed,
	"failure":    PaymentFailed,
	"cancelled":  PaymentFailed,
	"canceled":   PaymentFailed,
	"error":      PaymentFailed,
	"reversed":   PaymentFailed,
	"abandoned":  PaymentFailed,
	"declined":   PaymentFailed,
	"pending":    PaymentPending,
	"processing": PaymentPending,
	"initiated":  PaymentPending,
	"ongoing":    PaymentPending,
	"queued":     PaymentPending,
}

// ClassifyGatewayStatus maps a raw gateway status string to a PaymentState
func ClassifyGatewayStatus(raw string) PaymentState {
	if state, ok := gatewayStatuses[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return state
	}
	return PaymentUnknown
}

// TargetStatus returns the ledger status a definitive state resolves to.
// The boolean is false for pending and unknown states.
func (s PaymentState) TargetStatus() (TransactionStatus, bool) {
	switch s {
	case PaymentSucceeded:
		return StatusCompleted, true
	case PaymentFailed:
		return StatusFailed, true
	default:
		return "", false
	}
}
