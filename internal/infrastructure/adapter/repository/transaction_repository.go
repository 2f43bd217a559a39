package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		TxRef:         transaction.TxRef,
		UserID:        transaction.UserID,
		Type:          string(transaction.Type),
		AmountInCents: transaction.AmountInCents,
		FeeInCents:    transaction.FeeInCents,
		Status:        string(transaction.Status),
		Source:        string(transaction.Source),
		ResolvedBy:    transaction.ResolvedBy,
		RawPayload:    transaction.RawPayload,
		CreatedAt:     transaction.CreatedAt,
		ProcessedAt:   transaction.ProcessedAt,
		LastCheckedAt: transaction.LastCheckedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		TxRef:         m.TxRef,
		UserID:        m.UserID,
		Type:          entity.TransactionType(m.Type),
		AmountInCents: m.AmountInCents,
		FeeInCents:    m.FeeInCents,
		Status:        entity.TransactionStatus(m.Status),
		Source:        entity.ResolutionSource(m.Source),
		ResolvedBy:    m.ResolvedBy,
		RawPayload:    m.RawPayload,
		CreatedAt:     m.CreatedAt,
		ProcessedAt:   m.ProcessedAt,
		LastCheckedAt: m.LastCheckedAt,
	}
}

// Create inserts a new transaction row. The unique tx_ref index rejects a second row for the same reference.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", transaction.LogFields())

	transactionModel := r.entityToModel(transaction)
	result := r.db.WithContext(ctx).Create(&transactionModel)

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"tx_ref":  transaction.TxRef,
				"user_id": transaction.UserID,
			})
			return errs.ErrDuplicateTransaction
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"tx_ref":  transaction.TxRef,
			"user_id": transaction.UserID,
			"error":   result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}

	transaction.ID = transactionModel.ID
	return nil
}

// GetByTxRef retrieves a transaction by its gateway reference
func (r *TransactionRepository) GetByTxRef(ctx context.Context, txRef string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("tx_ref = ?", txRef).
		First(&transactionModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"tx_ref": txRef,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomain(result.Error)
	}

	return r.modelToEntity(&transactionModel), nil
}

// TransitionFromPending updates the row only while it is still pending, so at most one
// racing caller observes a successful transition.
func (r *TransactionRepository) TransitionFromPending(ctx context.Context, t persistence.Transition) error {
	if !entity.StatusPending.CanTransitionTo(t.Target) {
		return errs.ErrTransitionForbidden
	}

	updates := map[string]interface{}{
		"status":       string(t.Target),
		"source":       string(t.Source),
		"resolved_by":  t.ResolvedBy,
		"processed_at": t.At,
	}
	if t.RawPayload != "" {
		updates["raw_payload"] = t.RawPayload
	}

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("tx_ref = ? AND status = ?", t.TxRef, string(entity.StatusPending)).
		Updates(updates)

	if result.Error != nil {
		r.logger.Error("Failed to transition transaction", map[string]any{
			"tx_ref": t.TxRef,
			"target": string(t.Target),
			"error":  result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction left pending before transition", map[string]any{
			"tx_ref": t.TxRef,
			"target": string(t.Target),
		})
		return errs.ErrConcurrentUpdate
	}

	r.logger.Debug("Transaction transitioned", map[string]any{
		"tx_ref": t.TxRef,
		"status": string(t.Target),
		"source": string(t.Source),
	})
	return nil
}

// ListByUser returns the user's most recent transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomain(result.Error)
	}

	return r.toEntities(models), nil
}

// ListStalePending returns pending rows created before olderThan. Rows never checked or
// checked longest ago come first, so rows the gateway keeps reporting as pending rotate out.
func (r *TransactionRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entity.StatusPending), olderThan).
		Order("COALESCE(last_checked_at, created_at) ASC").
		Order("id ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list stale pending transactions", map[string]any{
			"older_than": olderThan,
			"error":      result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomain(result.Error)
	}

	r.logger.Debug("Stale pending transactions listed", map[string]any{
		"older_than": olderThan,
		"count":      len(models),
	})
	return r.toEntities(models), nil
}

// MarkChecked stamps the pending rows among txRefs with the time of a gateway status query
func (r *TransactionRepository) MarkChecked(ctx context.Context, txRefs []string, at time.Time) error {
	if len(txRefs) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("tx_ref IN ? AND status = ?", txRefs, string(entity.StatusPending)).
		Update("last_checked_at", at)

	if result.Error != nil {
		r.logger.Error("Failed to mark transactions as checked", map[string]any{
			"count": len(txRefs),
			"error": result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}
	return nil
}

func (r *TransactionRepository) toEntities(models []model.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		out = append(out, r.modelToEntity(&models[i]))
	}
	return out
}
