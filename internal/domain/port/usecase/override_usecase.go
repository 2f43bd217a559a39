package usecase

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/identity"
)

// OverrideUseCase lets an administrator settle a transaction by hand
type OverrideUseCase interface {
	OverrideStatus(ctx context.Context, txRef string, target entity.TransactionStatus, admin *identity.AdminIdentity) (*ApplyResult, error)
}
