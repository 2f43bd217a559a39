package usecase

import (
	"context"
	"time"
)

// ScanError records a single transaction that could not be reconciled in a scan
type ScanError struct {
	TxRef string `json:"txRef"`
	Error string `json:"error"`
}

// ScanReport summarises one reconciliation pass
type ScanReport struct {
	StartedAt      time.Time   `json:"startedAt"`
	FinishedAt     time.Time   `json:"finishedAt"`
	Examined       int         `json:"examined"`
	Completed      int         `json:"completed"`
	Failed         int         `json:"failed"`
	StillPending   int         `json:"stillPending"`
	Inconclusive   int         `json:"inconclusive"`
	AlreadyApplied int         `json:"alreadyApplied"`
	Rejected       int         `json:"rejected"`
	Errors         []ScanError `json:"errors,omitempty"`
}

// ReconciliationUseCase resolves stale pending transactions against the gateway
type ReconciliationUseCase interface {
	TriggerScan(ctx context.Context) (*ScanReport, error)
}
