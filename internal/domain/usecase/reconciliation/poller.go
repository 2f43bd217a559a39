package reconciliation

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// Config controls how stale pending transactions are reconciled
type Config struct {
	StaleAfter   time.Duration // Minimum age of a pending row before it is queried
	Interval     time.Duration // Time between scheduled scans
	BatchSize    int           // Maximum rows examined per scan
	Concurrency  int           // Maximum gateway queries in flight
	QueryTimeout time.Duration // Bound on a single gateway query
}

// DefaultConfig returns the settings used when none are configured
func DefaultConfig() Config {
	return Config{
		StaleAfter:   5 * time.Minute,
		Interval:     time.Minute,
		BatchSize:    100,
		Concurrency:  4,
		QueryTimeout: 10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.StaleAfter <= 0 {
		c.StaleAfter = d.StaleAfter
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = d.QueryTimeout
	}
	return c
}

// Poller resolves pending transactions whose webhook never arrived
type Poller struct {
	transactionRepo persistence.TransactionRepository
	client          gateway.StatusClient
	mutator         usecase.LedgerMutator
	config          Config
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger

	scanning sync.Mutex
}

var _ usecase.ReconciliationUseCase = (*Poller)(nil)

// NewPoller creates a new Poller
func NewPoller(
	transactionRepo persistence.TransactionRepository,
	client gateway.StatusClient,
	mutator usecase.LedgerMutator,
	config Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Poller {
	return &Poller{
		transactionRepo: transactionRepo,
		client:          client,
		mutator:         mutator,
		config:          config.withDefaults(),
		timeProvider:    timeProvider,
		logger:          logger.With(map[string]any{"component": "reconciliation_poller"}),
	}
}

// TriggerScan runs one scan on demand
func (p *Poller) TriggerScan(ctx context.Context) (*usecase.ScanReport, error) {
	return p.Scan(ctx)
}

// Run scans every Interval until ctx is cancelled
func (p *Poller) Run(ctx context.Context) {
	ticker := p.timeProvider.NewTicker(p.config.Interval)
	defer ticker.Stop()

	p.logger.Info("Reconciliation poller started", map[string]any{
		"interval":    p.config.Interval.String(),
		"stale_after": p.config.StaleAfter.String(),
	})

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Reconciliation poller stopped", nil)
			return
		case <-ticker.C():
			if _, err := p.Scan(ctx); err != nil && !errors.Is(err, errs.ErrScanInProgress) {
				p.logger.Error("Scheduled reconciliation scan failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// Scan queries the gateway for up to BatchSize stale pending rows, least recently checked
// first, and settles definitive answers through the ledger. A failure on one row never stops the others. Only one scan runs at a time.
func (p *Poller) Scan(ctx context.Context) (*usecase.ScanReport, error) {
	if !p.scanning.TryLock() {
		return nil, errs.ErrScanInProgress
	}
	defer p.scanning.Unlock()

	report := &usecase.ScanReport{StartedAt: p.timeProvider.Now()}
	cutoff := report.StartedAt.Add(-p.config.StaleAfter)

	stale, err := p.transactionRepo.ListStalePending(ctx, cutoff, p.config.BatchSize)
	if err != nil {
		p.logger.Error("Failed to list stale pending transactions", map[string]any{"error": err.Error()})
		return nil, err
	}

	// Stamping before the queries moves these rows behind the rest of the backlog for the next scan
	if err := p.transactionRepo.MarkChecked(ctx, txRefs(stale), report.StartedAt); err != nil {
		p.logger.Warn("Failed to stamp reconciliation check", map[string]any{
			"count": len(stale),
			"error": err.Error(),
		})
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(p.config.Concurrency)

	for _, txn := range stale {
		if ctx.Err() != nil {
			break
		}
		txn := txn
		g.Go(func() error {
			r := p.reconcile(ctx, txn)

			mu.Lock()
			defer mu.Unlock()
			report.Examined++
			r.addTo(report)
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = p.timeProvider.Now()
	p.logger.Info("Reconciliation scan finished", map[string]any{
		"examined":        report.Examined,
		"completed":       report.Completed,
		"failed":          report.Failed,
		"still_pending":   report.StillPending,
		"inconclusive":    report.Inconclusive,
		"already_applied": report.AlreadyApplied,
		"rejected":        report.Rejected,
		"errors":          len(report.Errors),
		"duration":        report.FinishedAt.Sub(report.StartedAt).String(),
	})

	return report, ctx.Err()
}

func txRefs(txns []*entity.Transaction) []string {
	refs := make([]string, 0, len(txns))
	for _, txn := range txns {
		refs = append(refs, txn.TxRef)
	}
	return refs
}

type verdict int

const (
	verdictStillPending verdict = iota
	verdictInconclusive
	verdictCompleted
	verdictFailed
	verdictAlreadyApplied
	verdictRejected
	verdictError
)

type rowResult struct {
	txRef   string
	verdict verdict
	err     error
}

func (r rowResult) addTo(report *usecase.ScanReport) {
	switch r.verdict {
	case verdictStillPending:
		report.StillPending++
	case verdictInconclusive:
		report.Inconclusive++
	case verdictCompleted:
		report.Completed++
	case verdictFailed:
		report.Failed++
	case verdictAlreadyApplied:
		report.AlreadyApplied++
	case verdictRejected:
		report.Rejected++
	}
	if r.err != nil {
		report.Errors = append(report.Errors, usecase.ScanError{TxRef: r.txRef, Error: r.err.Error()})
	}
}

func (p *Poller) reconcile(ctx context.Context, txn *entity.Transaction) rowResult {
	fields := txn.LogFields()

	queryCtx, cancel := p.timeProvider.WithTimeout(ctx, p.config.QueryTimeout)
	status, err := p.client.QueryStatus(queryCtx, txn.TxRef)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, errs.ErrGatewayTimeout) {
			err = errors.Join(errs.ErrGatewayTimeout, err)
		}
		for k, v := range errs.Fields(err) {
			fields[k] = v
		}
		p.logger.Warn("Gateway status query inconclusive, retrying next cycle", fields)
		return rowResult{txRef: txn.TxRef, verdict: verdictInconclusive, err: err}
	}

	fields["gateway_status"] = status.RawStatus
	target, definitive := status.State.TargetStatus()
	if !definitive {
		if status.State == entity.PaymentPending {
			p.logger.Debug("Gateway reports transaction still pending", fields)
			return rowResult{txRef: txn.TxRef, verdict: verdictStillPending}
		}
		p.logger.Warn("Gateway reported an unrecognised status", fields)
		return rowResult{txRef: txn.TxRef, verdict: verdictInconclusive}
	}

	// The ledger compares the settled amount against the recorded one
	amount := txn.AmountInCents
	if status.AmountInCents > 0 {
		amount = status.AmountInCents
		if amount != txn.AmountInCents {
			fields["gateway_amount"] = entity.AmountInCentsToString(amount)
			p.logger.Warn("Gateway amount differs from recorded amount", fields)
		}
	}

	result, err := p.mutator.Apply(ctx, usecase.ApplyRequest{
		TxRef:         txn.TxRef,
		UserID:        txn.UserID,
		Type:          txn.Type,
		AmountInCents: amount,
		FeeInCents:    txn.FeeInCents,
		TargetStatus:  target,
		Source:        entity.SourceReconciliation,
	})
	if err != nil {
		return rowResult{txRef: txn.TxRef, verdict: verdictError, err: err}
	}

	switch result.Outcome {
	case usecase.OutcomeApplied:
		if target == entity.StatusCompleted {
			return rowResult{txRef: txn.TxRef, verdict: verdictCompleted}
		}
		return rowResult{txRef: txn.TxRef, verdict: verdictFailed}
	case usecase.OutcomeAlreadyApplied:
		return rowResult{txRef: txn.TxRef, verdict: verdictAlreadyApplied}
	default:
		return rowResult{txRef: txn.TxRef, verdict: verdictRejected, err: result.Reason}
	}
}
