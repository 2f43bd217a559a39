package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/dbtest"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
)

func TestUnitOfWork_Execute(t *testing.T) {
	ctx := context.Background()
	clock := timeProvider.NewManualTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	env := dbtest.NewSQLite(t, clock)

	balance := func(userID string) int64 {
		account, err := env.UoW.GetAccountRepository(ctx).GetByUserID(ctx, userID)
		require.NoError(t, err)
		return account.BalanceInCents
	}

	t.Run("commits on success", func(t *testing.T) {
		err := env.UoW.Execute(ctx, func(txCtx context.Context) error {
			accounts := env.UoW.GetAccountRepository(txCtx)
			if err := accounts.EnsureExists(txCtx, "U1"); err != nil {
				return err
			}
			_, err := accounts.ApplyDelta(txCtx, "U1", 100000)
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, int64(100000), balance("U1"))
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		errBoom := errors.New("boom")

		err := env.UoW.Execute(ctx, func(txCtx context.Context) error {
			if _, err := env.UoW.GetAccountRepository(txCtx).ApplyDelta(txCtx, "U1", 500); err != nil {
				return err
			}
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, int64(100000), balance("U1"))
	})

	t.Run("reruns the whole unit after a lost race", func(t *testing.T) {
		attempts := 0

		err := env.UoW.Execute(ctx, func(txCtx context.Context) error {
			attempts++
			if _, err := env.UoW.GetAccountRepository(txCtx).ApplyDelta(txCtx, "U1", 1); err != nil {
				return err
			}
			if attempts == 1 {
				return errs.ErrConcurrentUpdate
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.Equal(t, int64(100001), balance("U1"), "the first attempt was rolled back")
	})

	t.Run("recovers panics after rolling back", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = env.UoW.Execute(ctx, func(txCtx context.Context) error {
				_, _ = env.UoW.GetAccountRepository(txCtx).ApplyDelta(txCtx, "U1", 7)
				panic("boom")
			})
		})
		assert.Equal(t, int64(100001), balance("U1"))
	})
}

func TestHealthChecker_Check(t *testing.T) {
	clock := timeProvider.NewManualTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	env := dbtest.NewSQLite(t, clock)

	report := env.Manager.HealthChecker().Check(context.Background())

	assert.True(t, report.Healthy)
	assert.Equal(t, "sqlite", report.Dialect)
	assert.Empty(t, report.Error)
}
