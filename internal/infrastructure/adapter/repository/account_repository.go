package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// getOperationType returns "credit" for positive or zero changes and "debit" for negative changes
func getOperationType(balanceChange int64) string {
	if balanceChange >= 0 {
		return "credit"
	}
	return "debit"
}

// AccountRepository implements AccountRepository interface using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account row to an account entity
func (r *AccountRepository) modelToEntity(row *model.Account) *entity.Account {
	return &entity.Account{
		UserID:         row.UserID,
		BalanceInCents: row.Balance,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// GetByUserID retrieves the account for a user
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.Account, error) {
	var row model.Account
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Database error when getting account", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomain(result.Error)
	}

	return r.modelToEntity(&row), nil
}

// EnsureExists inserts a zero-balance account unless one is already present
func (r *AccountRepository) EnsureExists(ctx context.Context, userID string) error {
	now := r.timeProvider.Now()
	account, err := entity.NewAccount(userID, now)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&model.Account{
			UserID:    account.UserID,
			CreatedAt: account.CreatedAt,
			UpdatedAt: account.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to provision account", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Account provisioned", map[string]any{"user_id": userID})
	}
	return nil
}

// ApplyDelta changes the balance with a single conditional UPDATE. A debit only matches
// when the current balance covers it, so the balance can never go negative.
func (r *AccountRepository) ApplyDelta(ctx context.Context, userID string, delta int64) (int64, error) {
	r.logger.Debug("Applying balance delta", map[string]any{
		"user_id":        userID,
		"operation_type": getOperationType(delta),
		"change_amount":  entity.AmountInCentsToString(delta),
	})

	db := r.db.WithContext(ctx)
	query := db.Model(&model.Account{}).Where("user_id = ?", userID)
	if delta < 0 {
		query = query.Where("balance >= ?", -delta)
	}

	result := query.Updates(map[string]interface{}{
		"balance":    gorm.Expr("balance + ?", delta),
		"updated_at": r.timeProvider.Now(),
	})
	if result.Error != nil {
		r.logger.Error("Failed to apply balance delta", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return 0, r.errorClassifier.ToDomain(result.Error)
	}

	if result.RowsAffected == 0 {
		account, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return 0, err
		}
		r.logger.Warn("Insufficient balance for debit", map[string]any{
			"user_id":          userID,
			"current_balance":  account.GetBalance(),
			"requested_change": entity.AmountInCentsToString(delta),
		})
		return 0, errs.NewInsufficientBalanceError(userID, entity.AmountInCentsToString(-delta), account.GetBalance())
	}

	account, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	r.logger.Info("Balance updated", map[string]any{
		"user_id":        userID,
		"balance_change": entity.AmountInCentsToString(delta),
		"new_balance":    account.GetBalance(),
		"operation_type": getOperationType(delta),
	})
	return account.BalanceInCents, nil
}
