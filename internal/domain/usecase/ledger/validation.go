package ledger

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// RequestValidator validates ledger requests before any store access
type RequestValidator struct{}

// NewRequestValidator creates a new RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// ValidateApply checks an apply request. Amounts must be positive and the target terminal.
func (v *RequestValidator) ValidateApply(req usecase.ApplyRequest) error {
	if err := entity.ValidateTxRef(req.TxRef); err != nil {
		return err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return errs.ErrInvalidUserID
	}
	if req.Type != entity.TypeDeposit && req.Type != entity.TypeWithdrawal {
		return fmt.Errorf("%w: %q", errs.ErrUnknownTransactionType, req.Type)
	}
	if req.AmountInCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	if req.FeeInCents < 0 {
		return errs.ErrNegativeAmount
	}
	if _, err := entity.AddCents(req.AmountInCents, req.FeeInCents); err != nil {
		return err
	}
	if !req.TargetStatus.IsTerminal() {
		return fmt.Errorf("%w: target must be completed or failed, got %q", errs.ErrInvalidStatus, req.TargetStatus)
	}
	return nil
}

// ValidateOpen checks an open request and returns amount and fee in cents
func (v *RequestValidator) ValidateOpen(req usecase.OpenRequest) (int64, int64, error) {
	if err := entity.ValidateTxRef(req.TxRef); err != nil {
		return 0, 0, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return 0, 0, errs.ErrInvalidUserID
	}
	if req.Type != entity.TypeDeposit && req.Type != entity.TypeWithdrawal {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrUnknownTransactionType, req.Type)
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return 0, 0, err
	}
	if amount == 0 {
		return 0, 0, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}

	var fee int64
	if strings.TrimSpace(req.Fee) != "" {
		if fee, err = entity.ParseAmount(req.Fee); err != nil {
			return 0, 0, err
		}
	}
	if _, err := entity.AddCents(amount, fee); err != nil {
		return 0, 0, err
	}

	return amount, fee, nil
}
