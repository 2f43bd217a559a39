package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/dbtest"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newRepos(t *testing.T) (*repository.AccountRepository, *repository.TransactionRepository, *timeProvider.ManualTimeProvider) {
	t.Helper()
	clock := timeProvider.NewManualTimeProvider(epoch)
	env := dbtest.NewSQLite(t, clock)
	log := logger.NewNoopLogger()
	return repository.NewAccountRepository(env.DB, clock, log), repository.NewTransactionRepository(env.DB, log), clock
}

func newTxn(t *testing.T, txRef string, status entity.TransactionStatus, at time.Time) *entity.Transaction {
	t.Helper()
	txn, err := entity.NewTransaction(txRef, "U1", entity.TypeWithdrawal, 50000, 1250, status, at)
	require.NoError(t, err)
	txn.Source = entity.SourceClient
	return txn
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	accounts, _, _ := newRepos(t)

	_, err := accounts.GetByUserID(ctx, "U1")
	require.ErrorIs(t, err, errs.ErrAccountNotFound)

	require.NoError(t, accounts.EnsureExists(ctx, "U1"))
	require.NoError(t, accounts.EnsureExists(ctx, "U1"), "provisioning is idempotent")

	balance, err := accounts.ApplyDelta(ctx, "U1", 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance)

	balance, err = accounts.ApplyDelta(ctx, "U1", -51250)
	require.NoError(t, err)
	assert.Equal(t, int64(48750), balance)

	_, err = accounts.ApplyDelta(ctx, "U1", -48751)
	var insufficient *errs.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "487.51", insufficient.Required)
	assert.Equal(t, "487.50", insufficient.CurrBalance)

	account, err := accounts.GetByUserID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "487.50", account.GetBalance())

	assert.ErrorIs(t, accounts.EnsureExists(ctx, ""), errs.ErrInvalidUserID)
}

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	_, txns, _ := newRepos(t)
	txn := newTxn(t, "TX2", entity.StatusPending, epoch)

	require.NoError(t, txns.Create(ctx, txn))
	assert.NotZero(t, txn.ID)

	got, err := txns.GetByTxRef(ctx, "TX2")
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)
	assert.Equal(t, int64(50000), got.AmountInCents)
	assert.Equal(t, int64(1250), got.FeeInCents)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Nil(t, got.ProcessedAt)

	err = txns.Create(ctx, newTxn(t, "TX2", entity.StatusCompleted, epoch))
	assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)

	_, err = txns.GetByTxRef(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func TestTransactionRepository_TransitionFromPending(t *testing.T) {
	ctx := context.Background()
	_, txns, _ := newRepos(t)
	require.NoError(t, txns.Create(ctx, newTxn(t, "TX2", entity.StatusPending, epoch)))
	at := epoch.Add(time.Hour)

	err := txns.TransitionFromPending(ctx, persistence.Transition{
		TxRef: "TX2", Target: entity.StatusFailed, Source: entity.SourceReconciliation,
		RawPayload: `{"status":"failed"}`, At: at,
	})
	require.NoError(t, err)

	got, err := txns.GetByTxRef(ctx, "TX2")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFailed, got.Status)
	assert.Equal(t, entity.SourceReconciliation, got.Source)
	assert.Equal(t, `{"status":"failed"}`, got.RawPayload)
	require.NotNil(t, got.ProcessedAt)
	assert.True(t, at.Equal(*got.ProcessedAt))

	t.Run("terminal rows do not move", func(t *testing.T) {
		err := txns.TransitionFromPending(ctx, persistence.Transition{TxRef: "TX2", Target: entity.StatusCompleted, At: at})

		assert.ErrorIs(t, err, errs.ErrConcurrentUpdate)
	})

	t.Run("pending is not a target", func(t *testing.T) {
		err := txns.TransitionFromPending(ctx, persistence.Transition{TxRef: "TX2", Target: entity.StatusPending, At: at})

		assert.ErrorIs(t, err, errs.ErrTransitionForbidden)
	})
}

func TestTransactionRepository_Listing(t *testing.T) {
	ctx := context.Background()
	_, txns, _ := newRepos(t)
	require.NoError(t, txns.Create(ctx, newTxn(t, "OLD", entity.StatusPending, epoch)))
	require.NoError(t, txns.Create(ctx, newTxn(t, "OLDER-DONE", entity.StatusCompleted, epoch.Add(-time.Hour))))
	require.NoError(t, txns.Create(ctx, newTxn(t, "NEW", entity.StatusPending, epoch.Add(30*time.Minute))))

	t.Run("stale pending only, oldest first", func(t *testing.T) {
		stale, err := txns.ListStalePending(ctx, epoch.Add(10*time.Minute), 10)

		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, "OLD", stale[0].TxRef)
	})

	t.Run("checked rows move behind unchecked ones", func(t *testing.T) {
		require.NoError(t, txns.Create(ctx, newTxn(t, "OLDEST", entity.StatusPending, epoch.Add(-2*time.Hour))))
		checkedAt := epoch.Add(20 * time.Minute)

		require.NoError(t, txns.MarkChecked(ctx, []string{"OLDEST", "OLDER-DONE"}, checkedAt))

		stale, err := txns.ListStalePending(ctx, epoch.Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, stale, 3)
		assert.Equal(t, []string{"OLD", "OLDEST", "NEW"}, []string{stale[0].TxRef, stale[1].TxRef, stale[2].TxRef})
		require.NotNil(t, stale[1].LastCheckedAt)
		assert.True(t, checkedAt.Equal(*stale[1].LastCheckedAt))

		done, err := txns.GetByTxRef(ctx, "OLDER-DONE")
		require.NoError(t, err)
		assert.Nil(t, done.LastCheckedAt, "settled rows are not stamped")
	})

	t.Run("by user, newest first", func(t *testing.T) {
		list, err := txns.ListByUser(ctx, "U1", 2)

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "NEW", list[0].TxRef)
		assert.Equal(t, "OLD", list[1].TxRef)
	})
}
