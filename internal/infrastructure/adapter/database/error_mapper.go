package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/repository"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeAccount represents the account entity
	EntityTypeAccount EntityType = "account"
	// EntityTypeTransaction represents the transaction entity
	EntityTypeTransaction EntityType = "transaction"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error raised while performing operation to a domain error.
// Errors that already belong to the domain taxonomy pass through unchanged.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errs.ErrorCode(err) != errs.CodeInternalServer {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s interrupted: %v", errs.ErrStoreUnavailable, operation, err)
	}

	mapped := m.classifier.ToDomain(err)
	if errors.Is(mapped, errs.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %s failed: %v", errs.ErrStoreUnavailable, operation, err)
	}
	return mapped
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeAccount:
			return errs.ErrAccountNotFound
		default:
			return errs.ErrTransactionNotFound
		}
	}

	return m.MapError(err, string(entityType))
}
