package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// WebhookDelivery is one inbound gateway push, body untouched
type WebhookDelivery struct {
	Body       []byte
	Signature  string
	RemoteAddr string
	RequestID  string
}

// IngestResult reports how a delivery was handled
type IngestResult struct {
	Outcome Outcome
	TxRef   string
	Status  entity.TransactionStatus
	Reason  string
}

// WebhookEventKind classifies entries of the webhook event log
type WebhookEventKind string

// Event kinds
const (
	EventInvalidSignature WebhookEventKind = "invalid_signature"
	EventMalformedPayload WebhookEventKind = "malformed_payload"
	EventProcessed        WebhookEventKind = "processed"
	EventStoreError       WebhookEventKind = "store_error"
)

// WebhookEvent is one entry of the in-process webhook log
type WebhookEvent struct {
	ID         string           `json:"id"`
	At         time.Time        `json:"at"`
	Kind       WebhookEventKind `json:"kind"`
	TxRef      string           `json:"txRef,omitempty"`
	Outcome    Outcome          `json:"outcome,omitempty"`
	Detail     string           `json:"detail,omitempty"`
	RemoteAddr string           `json:"remoteAddr,omitempty"`
	RequestID  string           `json:"requestId,omitempty"`
}

// WebhookUseCase ingests gateway pushes
type WebhookUseCase interface {
	Ingest(ctx context.Context, delivery WebhookDelivery) (*IngestResult, error)
	RecentEvents(limit int) []WebhookEvent
}
