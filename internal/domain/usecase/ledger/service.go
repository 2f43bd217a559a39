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

// ListLimits bounds listTransactions page sizes
type ListLimits struct {
	Default int
	Max     int
}

// DefaultListLimits returns the limits used when none are configured
func DefaultListLimits() ListLimits {
	return ListLimits{Default: 50, Max: 200}
}

// Service serves the ledger's read operations and records pending transactions
type Service struct {
	uow          persistence.UnitOfWork
	guard        *Guard
	validator    *RequestValidator
	limits       ListLimits
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.LedgerUseCase = (*Service)(nil)

// NewService creates a new ledger Service
func NewService(
	uow persistence.UnitOfWork,
	limits ListLimits,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	if limits.Default <= 0 || limits.Max <= 0 {
		limits = DefaultListLimits()
	}
	return &Service{
		uow:          uow,
		guard:        NewGuard(uow.GetTransactionRepository(context.Background())),
		validator:    NewRequestValidator(),
		limits:       limits,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"component": "ledger_service"}),
	}
}

// Guard returns the idempotency guard backed by this service's store
func (s *Service) Guard() *Guard {
	return s.guard
}

// OpenTransaction records a pending deposit or withdrawal. The balance is not touched.
// Withdrawals must be covered by the current balance at request time. Re-opening the
// same txRef for the same user and type returns the recorded row.
func (s *Service) OpenTransaction(ctx context.Context, req usecase.OpenRequest) (*entity.Transaction, error) {
	amount, fee, err := s.validator.ValidateOpen(req)
	if err != nil {
		return nil, err
	}

	var opened *entity.Transaction
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		txRepo := s.uow.GetTransactionRepository(txCtx)
		accountRepo := s.uow.GetAccountRepository(txCtx)

		existing, err := txRepo.GetByTxRef(txCtx, req.TxRef)
		switch {
		case err == nil:
			if existing.UserID != req.UserID || existing.Type != req.Type {
				return reject(fmt.Errorf("%w: %s", errs.ErrDuplicateTransaction, req.TxRef), existing)
			}
			opened = existing
			return nil
		case !errors.Is(err, errs.ErrTransactionNotFound):
			return err
		}

		if err := accountRepo.EnsureExists(txCtx, req.UserID); err != nil {
			return err
		}

		if req.Type == entity.TypeWithdrawal {
			account, err := accountRepo.GetByUserID(txCtx, req.UserID)
			if err != nil {
				return err
			}
			if !account.CanCover(amount + fee) {
				return reject(errs.NewInsufficientBalanceError(req.UserID,
					entity.AmountInCentsToString(amount+fee), account.GetBalance()), nil)
			}
		}

		txn, err := entity.NewTransaction(req.TxRef, req.UserID, req.Type, amount, fee,
			entity.StatusPending, s.timeProvider.Now())
		if err != nil {
			return reject(err, nil)
		}
		txn.Source = entity.SourceClient

		if err := txRepo.Create(txCtx, txn); err != nil {
			return err
		}
		opened = txn
		return nil
	})

	var rej *rejection
	if errors.As(err, &rej) {
		s.logger.Warn("Pending transaction refused", map[string]any{
			"tx_ref":  req.TxRef,
			"user_id": req.UserID,
			"type":    string(req.Type),
			"error":   rej.reason.Error(),
		})
		return nil, rej.reason
	}
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Pending transaction recorded", opened.LogFields())
	return opened, nil
}

// GetBalance returns the user's account
func (s *Service) GetBalance(ctx context.Context, userID string) (*entity.Account, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.GetAccountRepository(ctx).GetByUserID(ctx, userID)
}

// ListTransactions returns at most limit transactions for the user, newest first.
// A non-positive limit selects the default; larger limits are capped.
func (s *Service) ListTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if limit <= 0 {
		limit = s.limits.Default
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}
	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, limit)
}

// GetStatus returns the status recorded for txRef
func (s *Service) GetStatus(ctx context.Context, txRef string) (entity.TransactionStatus, error) {
	if err := entity.ValidateTxRef(txRef); err != nil {
		return "", err
	}
	found, err := s.guard.Lookup(ctx, txRef)
	if err != nil {
		return "", err
	}
	if !found.Found {
		return "", errs.ErrTransactionNotFound
	}
	return found.Status, nil
}
