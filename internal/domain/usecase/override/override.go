package override

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/identity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// Service settles a transaction on an administrator's word.
// It goes through the same mutator as the automatic paths, so the state machine still applies.
type Service struct {
	transactionRepo persistence.TransactionRepository
	mutator         usecase.LedgerMutator
	logger          coreport.Logger
}

var _ usecase.OverrideUseCase = (*Service)(nil)

// NewService creates a new override Service
func NewService(
	transactionRepo persistence.TransactionRepository,
	mutator usecase.LedgerMutator,
	logger coreport.Logger,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		mutator:         mutator,
		logger:          logger.With(map[string]any{"component": "manual_override"}),
	}
}

// OverrideStatus moves txRef to target on behalf of admin
func (s *Service) OverrideStatus(
	ctx context.Context,
	txRef string,
	target entity.TransactionStatus,
	admin *identity.AdminIdentity,
) (*usecase.ApplyResult, error) {
	if admin == nil {
		s.logger.Warn("Override attempted without administrator identity", map[string]any{
			"tx_ref":         txRef,
			"security_event": true,
		})
		return nil, errs.ErrUnauthorized
	}
	if err := entity.ValidateTxRef(txRef); err != nil {
		return nil, err
	}
	if !target.IsTerminal() {
		return nil, fmt.Errorf("%w: override target must be completed or failed, got %q", errs.ErrInvalidStatus, target)
	}

	txn, err := s.transactionRepo.GetByTxRef(ctx, txRef)
	if err != nil {
		return nil, err
	}

	fields := txn.LogFields()
	fields["target_status"] = string(target)
	fields["admin_id"] = admin.ID
	fields["admin_name"] = admin.Name

	result, err := s.mutator.Apply(ctx, usecase.ApplyRequest{
		TxRef:         txn.TxRef,
		UserID:        txn.UserID,
		Type:          txn.Type,
		AmountInCents: txn.AmountInCents,
		FeeInCents:    txn.FeeInCents,
		TargetStatus:  target,
		Source:        entity.SourceOverride,
		ResolvedBy:    admin.Name,
	})
	if err != nil {
		fields["error"] = err.Error()
		s.logger.Error("Manual override failed", fields)
		return nil, err
	}

	fields["outcome"] = string(result.Outcome)
	if result.Reason != nil {
		fields["reason"] = result.Reason.Error()
	}
	s.logger.Info("Manual override processed", fields)

	return result, nil
}
