package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// rejection aborts a unit of work without marking it retryable.
// It deliberately does not implement Unwrap.
type rejection struct {
	reason error
	txn    *entity.Transaction
}

func (r *rejection) Error() string {
	return "rejected: " + r.reason.Error()
}

func reject(reason error, txn *entity.Transaction) error {
	return &rejection{reason: reason, txn: txn}
}

// Mutator is the only component that changes balances. Each Apply runs the
// status change and the balance delta in one unit of work.
type Mutator struct {
	uow          persistence.UnitOfWork
	validator    *RequestValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewMutator creates a new Mutator
func NewMutator(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Mutator {
	return &Mutator{
		uow:          uow,
		validator:    NewRequestValidator(),
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"component": "ledger_mutator"}),
	}
}

// Apply moves req.TxRef to req.TargetStatus.
//
//   - no row: the row is created in the target status; completed rows apply their delta
//   - pending row: the row transitions; completed transitions apply the recorded delta
//     unless a deposit was settled for less than its recorded amount, which is Rejected
//   - terminal row: AlreadyApplied, except failed -> completed which is Rejected
//
// Rejections are reported in the result. The returned error is reserved for store failures.
func (m *Mutator) Apply(ctx context.Context, req usecase.ApplyRequest) (*usecase.ApplyResult, error) {
	if err := m.validator.ValidateApply(req); err != nil {
		m.logger.Warn("Rejected invalid ledger request", withError(req.LogFields(), err))
		return &usecase.ApplyResult{Outcome: usecase.OutcomeRejected, Reason: err}, nil
	}

	var result *usecase.ApplyResult
	err := m.uow.Execute(ctx, func(txCtx context.Context) error {
		r, err := m.applyInUnit(txCtx, req)
		if err != nil {
			return err
		}
		result = r
		return nil
	})

	var rej *rejection
	switch {
	case errors.As(err, &rej):
		m.logger.Warn("Ledger request rejected", withError(req.LogFields(), rej.reason))
		return &usecase.ApplyResult{
			Outcome:     usecase.OutcomeRejected,
			Reason:      rej.reason,
			Transaction: rej.txn,
		}, nil
	case err != nil:
		wrapped := errs.NewTransactionError(
			req.TxRef, req.UserID, string(req.Type), string(req.TargetStatus),
			entity.AmountInCentsToString(req.AmountInCents), "ledger unit of work failed", storeError(err),
		)
		m.logger.Error("Ledger mutation failed", errs.Fields(wrapped))
		return nil, wrapped
	}

	fields := req.LogFields()
	fields["outcome"] = string(result.Outcome)
	fields["balance"] = entity.AmountInCentsToString(result.BalanceInCents)
	if result.Outcome == usecase.OutcomeApplied {
		m.logger.Info("Ledger mutation applied", fields)
	} else {
		m.logger.Debug("Ledger mutation already applied", fields)
	}

	return result, nil
}

func (m *Mutator) applyInUnit(ctx context.Context, req usecase.ApplyRequest) (*usecase.ApplyResult, error) {
	txRepo := m.uow.GetTransactionRepository(ctx)
	accountRepo := m.uow.GetAccountRepository(ctx)
	now := m.timeProvider.Now()

	existing, err := txRepo.GetByTxRef(ctx, req.TxRef)
	if errors.Is(err, errs.ErrTransactionNotFound) {
		return m.createSettled(ctx, txRepo, accountRepo, req)
	}
	if err != nil {
		return nil, err
	}

	if existing.UserID != req.UserID || existing.Type != req.Type {
		return nil, reject(fmt.Errorf("%w: recorded %s/%s, requested %s/%s", errs.ErrRoutingMismatch,
			existing.UserID, existing.Type, req.UserID, req.Type), existing)
	}

	if existing.Status.IsTerminal() {
		if existing.Status == entity.StatusFailed && req.TargetStatus == entity.StatusCompleted {
			return nil, reject(fmt.Errorf("%w: %s is failed", errs.ErrTransitionForbidden, existing.TxRef), existing)
		}
		balance, err := currentBalance(ctx, accountRepo, existing.UserID)
		if err != nil {
			return nil, err
		}
		return &usecase.ApplyResult{
			Outcome:        usecase.OutcomeAlreadyApplied,
			Transaction:    existing,
			BalanceInCents: balance,
		}, nil
	}

	// An underpaid deposit never credits the recorded amount. The row stays pending for an operator.
	if req.TargetStatus == entity.StatusCompleted && existing.Type == entity.TypeDeposit &&
		req.AmountInCents < existing.AmountInCents {
		return nil, reject(fmt.Errorf("%w: recorded %s, settled %s", errs.ErrAmountMismatch,
			existing.Amount(), entity.AmountInCentsToString(req.AmountInCents)), existing)
	}

	if existing.AmountInCents != req.AmountInCents || existing.FeeInCents != req.FeeInCents {
		m.logger.Warn("Settlement amount differs from recorded transaction, using recorded values", map[string]any{
			"tx_ref":          existing.TxRef,
			"recorded_amount": existing.Amount(),
			"recorded_fee":    existing.Fee(),
			"reported_amount": entity.AmountInCentsToString(req.AmountInCents),
			"reported_fee":    entity.AmountInCentsToString(req.FeeInCents),
		})
	}

	// The conditional update is the serialization point for racing callers.
	if err := txRepo.TransitionFromPending(ctx, persistence.Transition{
		TxRef:      existing.TxRef,
		Target:     req.TargetStatus,
		Source:     req.Source,
		ResolvedBy: req.ResolvedBy,
		RawPayload: req.RawPayload,
		At:         now,
	}); err != nil {
		return nil, err
	}

	balance, err := m.settleBalance(ctx, accountRepo, existing.UserID, req.TargetStatus, existing.BalanceDelta())
	if err != nil {
		var rej *rejection
		if errors.As(err, &rej) {
			rej.txn = existing
		}
		return nil, err
	}

	existing.Status = req.TargetStatus
	existing.Source = req.Source
	existing.ResolvedBy = req.ResolvedBy
	existing.ProcessedAt = &now
	if req.RawPayload != "" {
		existing.RawPayload = req.RawPayload
	}

	return &usecase.ApplyResult{
		Outcome:        usecase.OutcomeApplied,
		Transaction:    existing,
		BalanceInCents: balance,
	}, nil
}

// createSettled records a never-seen txRef directly in its terminal status
func (m *Mutator) createSettled(
	ctx context.Context,
	txRepo persistence.TransactionRepository,
	accountRepo persistence.AccountRepository,
	req usecase.ApplyRequest,
) (*usecase.ApplyResult, error) {
	txn, err := entity.NewTransaction(req.TxRef, req.UserID, req.Type, req.AmountInCents, req.FeeInCents,
		req.TargetStatus, m.timeProvider.Now())
	if err != nil {
		return nil, reject(err, nil)
	}
	txn.Source = req.Source
	txn.ResolvedBy = req.ResolvedBy
	txn.RawPayload = req.RawPayload

	// A duplicate here means another caller won the insert; the unit is re-run and sees its row.
	if err := txRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	balance, err := m.settleBalance(ctx, accountRepo, txn.UserID, txn.Status, txn.BalanceDelta())
	if err != nil {
		return nil, err
	}

	return &usecase.ApplyResult{
		Outcome:        usecase.OutcomeApplied,
		Transaction:    txn,
		BalanceInCents: balance,
	}, nil
}

// settleBalance applies delta when status is completed and returns the resulting balance
func (m *Mutator) settleBalance(
	ctx context.Context,
	accountRepo persistence.AccountRepository,
	userID string,
	status entity.TransactionStatus,
	delta int64,
) (int64, error) {
	if err := accountRepo.EnsureExists(ctx, userID); err != nil {
		return 0, err
	}
	if status != entity.StatusCompleted {
		return currentBalance(ctx, accountRepo, userID)
	}

	balance, err := accountRepo.ApplyDelta(ctx, userID, delta)
	if errors.Is(err, errs.ErrInsufficientBalance) {
		return 0, reject(err, nil)
	}
	return balance, err
}

func currentBalance(ctx context.Context, accountRepo persistence.AccountRepository, userID string) (int64, error) {
	account, err := accountRepo.GetByUserID(ctx, userID)
	if errors.Is(err, errs.ErrAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return account.BalanceInCents, nil
}

// storeError makes sure failures leaving the unit of work carry ErrStoreUnavailable
func storeError(err error) error {
	if errors.Is(err, errs.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
}

func withError(fields map[string]any, err error) map[string]any {
	fields["error"] = err.Error()
	fields["error_code"] = errs.ErrorCode(err)
	return fields
}
