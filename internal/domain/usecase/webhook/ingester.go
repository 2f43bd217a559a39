package webhook

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// idempotencyGuard is the read-only lookup used to short-circuit replays
type idempotencyGuard interface {
	Lookup(ctx context.Context, txRef string) (usecase.LookupResult, error)
}

// Config controls webhook ingestion
type Config struct {
	// VerifySignature may only be false outside production; config validation enforces that
	VerifySignature bool
}

// Ingester authenticates gateway pushes and hands settled payments to the ledger
type Ingester struct {
	verifier *SignatureVerifier
	guard    idempotencyGuard
	mutator  usecase.LedgerMutator
	events   *EventLog
	config   Config
	logger   coreport.Logger
}

var _ usecase.WebhookUseCase = (*Ingester)(nil)

// NewIngester creates a new Ingester
func NewIngester(
	verifier *SignatureVerifier,
	guard idempotencyGuard,
	mutator usecase.LedgerMutator,
	events *EventLog,
	config Config,
	logger coreport.Logger,
) *Ingester {
	return &Ingester{
		verifier: verifier,
		guard:    guard,
		mutator:  mutator,
		events:   events,
		config:   config,
		logger:   logger.With(map[string]any{"component": "webhook_ingester"}),
	}
}

// Ingest verifies, parses and applies one delivery.
//
// Authentication and payload failures are returned as errors and never reach the store.
// Replays of an already-settled txRef and non-definitive statuses are successes.
func (i *Ingester) Ingest(ctx context.Context, d usecase.WebhookDelivery) (*usecase.IngestResult, error) {
	if i.config.VerifySignature && !i.verifier.Verify(d.Body, d.Signature) {
		i.record(d, usecase.WebhookEvent{Kind: usecase.EventInvalidSignature, Detail: "signature mismatch"})
		i.logger.Warn("Webhook signature rejected", map[string]any{
			"security_event": true,
			"remote_addr":    d.RemoteAddr,
			"request_id":     d.RequestID,
			"signature_set":  d.Signature != "",
			"body_bytes":     len(d.Body),
		})
		return nil, errs.ErrInvalidSignature
	}

	n, err := ParsePayload(d.Body)
	if err != nil {
		i.record(d, usecase.WebhookEvent{Kind: usecase.EventMalformedPayload, Detail: err.Error()})
		fields := errs.Fields(err)
		fields["request_id"] = d.RequestID
		fields["error_code"] = errs.ErrorCode(err)
		i.logger.Warn("Webhook payload rejected", fields)
		return nil, err
	}

	target, definitive := n.State.TargetStatus()
	if !definitive {
		result := &usecase.IngestResult{
			Outcome: usecase.OutcomeIgnored,
			TxRef:   n.TxRef,
			Reason:  "gateway status " + n.RawStatus + " is not final",
		}
		i.record(d, usecase.WebhookEvent{Kind: usecase.EventProcessed, TxRef: n.TxRef, Outcome: result.Outcome, Detail: result.Reason})
		i.logger.Info("Webhook with non-final status ignored", map[string]any{
			"tx_ref":     n.TxRef,
			"raw_status": n.RawStatus,
			"request_id": d.RequestID,
		})
		return result, nil
	}

	found, err := i.guard.Lookup(ctx, n.TxRef)
	if err != nil {
		return nil, i.storeFailure(d, n.TxRef, err)
	}
	if found.Found && found.Status == target {
		result := &usecase.IngestResult{Outcome: usecase.OutcomeAlreadyApplied, TxRef: n.TxRef, Status: found.Status}
		i.record(d, usecase.WebhookEvent{Kind: usecase.EventProcessed, TxRef: n.TxRef, Outcome: result.Outcome})
		i.logger.Debug("Webhook replay acknowledged", map[string]any{
			"tx_ref":     n.TxRef,
			"status":     string(found.Status),
			"request_id": d.RequestID,
		})
		return result, nil
	}

	applied, err := i.mutator.Apply(ctx, usecase.ApplyRequest{
		TxRef:         n.TxRef,
		UserID:        n.UserID,
		Type:          n.Type,
		AmountInCents: n.AmountInCents,
		FeeInCents:    n.FeeInCents,
		TargetStatus:  target,
		Source:        entity.SourceWebhook,
		RawPayload:    string(d.Body),
	})
	if err != nil {
		return nil, i.storeFailure(d, n.TxRef, err)
	}

	result := &usecase.IngestResult{Outcome: applied.Outcome, TxRef: n.TxRef}
	if applied.Transaction != nil {
		result.Status = applied.Transaction.Status
	}
	if applied.Reason != nil {
		result.Reason = applied.Reason.Error()
	}
	i.record(d, usecase.WebhookEvent{Kind: usecase.EventProcessed, TxRef: n.TxRef, Outcome: result.Outcome, Detail: result.Reason})

	return result, nil
}

// RecentEvents returns the newest webhook log entries first
func (i *Ingester) RecentEvents(limit int) []usecase.WebhookEvent {
	return i.events.Recent(limit)
}

func (i *Ingester) storeFailure(d usecase.WebhookDelivery, txRef string, err error) error {
	if !errors.Is(err, errs.ErrStoreUnavailable) {
		err = errors.Join(errs.ErrStoreUnavailable, err)
	}
	i.record(d, usecase.WebhookEvent{Kind: usecase.EventStoreError, TxRef: txRef, Detail: err.Error()})
	i.logger.Error("Webhook could not be recorded", map[string]any{
		"tx_ref":     txRef,
		"request_id": d.RequestID,
		"error":      err.Error(),
	})
	return err
}

func (i *Ingester) record(d usecase.WebhookDelivery, event usecase.WebhookEvent) {
	event.RemoteAddr = d.RemoteAddr
	event.RequestID = d.RequestID
	i.events.Record(event)
}
