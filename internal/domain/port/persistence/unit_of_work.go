package persistence

import (
	"context"
)

// UnitOfWork defines the interface for managing database transactions
type UnitOfWork interface {
	// Begin starts a new transaction and returns a context containing it
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the current transaction
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction
	Rollback(ctx context.Context) error

	// Execute runs fn inside one transaction, committing on success and rolling back on error.
	// The whole unit is re-run when fn or the commit fails with a retryable store error.
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error

	// GetAccountRepository returns an account repository bound to the transaction in ctx
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a transaction repository bound to the transaction in ctx
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
