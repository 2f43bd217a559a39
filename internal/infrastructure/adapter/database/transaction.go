package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	retryConfig  RetryConfig
	errorMapper  *ErrorMapper
	metrics      *MetricsCollector
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, retryConfig RetryConfig) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		retryConfig:  retryConfig,
		errorMapper:  NewErrorMapper(),
		metrics:      NewMetricsCollector(logger, timeProvider),
	}
}

// Begin starts a new database transaction. PostgreSQL transactions run SERIALIZABLE;
// SQLite serializes writers on its own.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, u.errorMapper.MapError(tx.Error, "begin transaction")
	}

	if u.db.Dialector.Name() == DriverPostgres {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
			tx.Rollback()
			u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
			return ctx, u.errorMapper.MapError(err, "set isolation level")
		}
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return u.errorMapper.MapError(err, "commit")
	}

	return nil
}

// Rollback rolls back the current transaction
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error

	// If the error indicates the transaction was already committed or rolled back,
	// log it as a warning but don't return an error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Execute runs fn in a fresh transaction and commits it. When fn or the commit fails with a
// retryable error the transaction is rolled back and fn is run again from the start.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	_, err := u.metrics.MeasureUnit(func() (int, error) {
		attempts := 0
		err := RetryOnTransientError(ctx, u.retryConfig, func() error {
			attempts++
			return u.runOnce(ctx, fn)
		}, u.timeProvider, u.logger)
		return attempts, err
	})
	return err
}

func (u *UnitOfWork) runOnce(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	txCtx, err := u.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(txCtx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := u.Rollback(txCtx); rbErr != nil {
			u.logger.Warn("Rollback after failed unit of work failed", map[string]any{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}

	return u.Commit(txCtx)
}

// GetAccountRepository returns an account repository in the current transaction
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}
