package reconciliation_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/reconciliation"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/dbtest"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	mgw "github.com/amirhossein-jamali/payment-ledger/mocks/port/gateway"
	mpers "github.com/amirhossein-jamali/payment-ledger/mocks/port/persistence"
	muse "github.com/amirhossein-jamali/payment-ledger/mocks/port/usecase"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

var testConfig = reconciliation.Config{
	StaleAfter:   5 * time.Minute,
	Interval:     time.Minute,
	BatchSize:    50,
	Concurrency:  4,
	QueryTimeout: 50 * time.Millisecond,
}

type fixture struct {
	clock   *timeProvider.ManualTimeProvider
	client  *mgw.MockStatusClient
	service *ledger.Service
	mutator *ledger.Mutator
	poller  *reconciliation.Poller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, testConfig)
}

func newFixtureWithConfig(t *testing.T, config reconciliation.Config) *fixture {
	t.Helper()
	clock := timeProvider.NewManualTimeProvider(epoch)
	env := dbtest.NewSQLite(t, clock)
	log := logger.NewNoopLogger()
	client := mgw.NewMockStatusClient(t)
	mutator := ledger.NewMutator(env.UoW, clock, log)

	return &fixture{
		clock:   clock,
		client:  client,
		service: ledger.NewService(env.UoW, ledger.DefaultListLimits(), clock, log),
		mutator: mutator,
		poller: reconciliation.NewPoller(env.UoW.GetTransactionRepository(context.Background()),
			client, mutator, config, clock, log),
	}
}

func (f *fixture) fund(t *testing.T, userID string, cents int64) {
	t.Helper()
	result, err := f.mutator.Apply(context.Background(), usecase.ApplyRequest{
		TxRef: "FUND-" + userID, UserID: userID, Type: entity.TypeDeposit,
		AmountInCents: cents, TargetStatus: entity.StatusCompleted, Source: entity.SourceWebhook,
	})
	require.NoError(t, err)
	require.Equal(t, usecase.OutcomeApplied, result.Outcome)
}

func (f *fixture) open(t *testing.T, txRef string, txType entity.TransactionType, amount, fee string) {
	t.Helper()
	_, err := f.service.OpenTransaction(context.Background(), usecase.OpenRequest{
		TxRef: txRef, UserID: "U1", Type: txType, Amount: amount, Fee: fee,
	})
	require.NoError(t, err)
}

func (f *fixture) status(t *testing.T, txRef string) entity.TransactionStatus {
	t.Helper()
	status, err := f.service.GetStatus(context.Background(), txRef)
	require.NoError(t, err)
	return status
}

func (f *fixture) balance(t *testing.T, userID string) int64 {
	t.Helper()
	account, err := f.service.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return account.BalanceInCents
}

func report(txRef string, state entity.PaymentState) *gateway.StatusReport {
	return &gateway.StatusReport{TxRef: txRef, State: state, RawStatus: string(state)}
}

func TestPoller_FailedWithdrawalLeavesBalance(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.fund(t, "U1", 100000)
	f.open(t, "TX2", entity.TypeWithdrawal, "500", "12.5")
	f.clock.Advance(10 * time.Minute)
	f.client.EXPECT().QueryStatus(mock.Anything, "TX2").Return(report("TX2", entity.PaymentFailed), nil).Once()

	// Act
	scan, err := f.poller.TriggerScan(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, scan.Examined)
	assert.Equal(t, 1, scan.Failed)
	assert.Empty(t, scan.Errors)
	assert.Equal(t, entity.StatusFailed, f.status(t, "TX2"))
	assert.Equal(t, int64(100000), f.balance(t, "U1"))
}

func TestPoller_CompletesPendingRows(t *testing.T) {
	f := newFixture(t)
	f.fund(t, "U1", 100000)
	f.open(t, "TX-DEP", entity.TypeDeposit, "20", "")
	f.open(t, "TX-WD", entity.TypeWithdrawal, "500", "12.5")
	f.clock.Advance(10 * time.Minute)
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-DEP").Return(report("TX-DEP", entity.PaymentSucceeded), nil)
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-WD").Return(report("TX-WD", entity.PaymentSucceeded), nil)

	scan, err := f.poller.TriggerScan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, scan.Completed)
	assert.Equal(t, int64(100000+2000-51250), f.balance(t, "U1"))

	// A second scan finds nothing left to do
	scan, err = f.poller.TriggerScan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, scan.Examined)
}

func TestPoller_IsolatesRowFailures(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.open(t, "TX-SLOW", entity.TypeDeposit, "1", "")
	f.open(t, "TX-DOWN", entity.TypeDeposit, "2", "")
	f.open(t, "TX-ODD", entity.TypeDeposit, "3", "")
	f.open(t, "TX-WAIT", entity.TypeDeposit, "4", "")
	f.open(t, "TX-OK", entity.TypeDeposit, "5", "")
	f.clock.Advance(10 * time.Minute)

	f.client.EXPECT().QueryStatus(mock.Anything, "TX-SLOW").RunAndReturn(
		func(ctx context.Context, _ string) (*gateway.StatusReport, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-DOWN").
		Return(nil, errs.NewGatewayError("TX-DOWN", 502, errs.ErrGatewayUnreachable, nil))
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-ODD").Return(report("TX-ODD", entity.PaymentUnknown), nil)
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-WAIT").Return(report("TX-WAIT", entity.PaymentPending), nil)
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-OK").Return(report("TX-OK", entity.PaymentSucceeded), nil)

	// Act
	scan, err := f.poller.TriggerScan(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, scan.Examined)
	assert.Equal(t, 1, scan.Completed)
	assert.Equal(t, 3, scan.Inconclusive)
	assert.Equal(t, 1, scan.StillPending)
	require.Len(t, scan.Errors, 2)

	byRef := map[string]string{}
	for _, e := range scan.Errors {
		byRef[e.TxRef] = e.Error
	}
	assert.Contains(t, byRef["TX-SLOW"], errs.ErrGatewayTimeout.Error())
	assert.Contains(t, byRef["TX-DOWN"], errs.ErrGatewayUnreachable.Error())

	for _, ref := range []string{"TX-SLOW", "TX-DOWN", "TX-ODD", "TX-WAIT"} {
		assert.Equal(t, entity.StatusPending, f.status(t, ref), ref)
	}
	assert.Equal(t, entity.StatusCompleted, f.status(t, "TX-OK"))
	assert.Equal(t, int64(500), f.balance(t, "U1"))
}

func TestPoller_RotatesRowsTheGatewayKeepsPending(t *testing.T) {
	// Arrange
	config := testConfig
	config.BatchSize = 3
	f := newFixtureWithConfig(t, config)
	waiting := []string{"TX-WAIT-1", "TX-WAIT-2", "TX-WAIT-3"}
	for _, ref := range waiting {
		f.open(t, ref, entity.TypeDeposit, "1", "")
		f.client.EXPECT().QueryStatus(mock.Anything, ref).Return(report(ref, entity.PaymentPending), nil)
	}
	f.clock.Advance(time.Minute)
	f.open(t, "TX-NEW", entity.TypeDeposit, "5", "")
	f.client.EXPECT().QueryStatus(mock.Anything, "TX-NEW").Return(report("TX-NEW", entity.PaymentSucceeded), nil).Once()
	f.clock.Advance(10 * time.Minute)

	// Act
	first, err := f.poller.TriggerScan(context.Background())
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	second, err := f.poller.TriggerScan(context.Background())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 3, first.StillPending)
	assert.Zero(t, first.Completed)
	assert.Equal(t, 3, second.Examined)
	assert.Equal(t, 1, second.Completed)
	assert.Equal(t, entity.StatusCompleted, f.status(t, "TX-NEW"))
	assert.Equal(t, int64(500), f.balance(t, "U1"))
	for _, ref := range waiting {
		assert.Equal(t, entity.StatusPending, f.status(t, ref), ref)
	}
}

func TestPoller_UnderpaidDepositIsNotCredited(t *testing.T) {
	f := newFixture(t)
	f.open(t, "TX9", entity.TypeDeposit, "1000", "")
	f.clock.Advance(10 * time.Minute)
	underpaid := report("TX9", entity.PaymentSucceeded)
	underpaid.AmountInCents = 100
	f.client.EXPECT().QueryStatus(mock.Anything, "TX9").Return(underpaid, nil).Once()

	scan, err := f.poller.TriggerScan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, scan.Rejected)
	require.Len(t, scan.Errors, 1)
	assert.Contains(t, scan.Errors[0].Error, errs.ErrAmountMismatch.Error())
	assert.Equal(t, entity.StatusPending, f.status(t, "TX9"))
	assert.Equal(t, int64(0), f.balance(t, "U1"))
}

func TestPoller_SkipsFreshRows(t *testing.T) {
	f := newFixture(t)
	f.open(t, "TX-NEW", entity.TypeDeposit, "1", "")
	f.clock.Advance(time.Minute)

	scan, err := f.poller.TriggerScan(context.Background())

	require.NoError(t, err)
	assert.Zero(t, scan.Examined)
	f.client.AssertNotCalled(t, "QueryStatus", mock.Anything, "TX-NEW")
}

func TestPoller_OneScanAtATime(t *testing.T) {
	f := newFixture(t)
	f.open(t, "TX1", entity.TypeDeposit, "1", "")
	f.clock.Advance(10 * time.Minute)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.client.EXPECT().QueryStatus(mock.Anything, "TX1").RunAndReturn(
		func(ctx context.Context, txRef string) (*gateway.StatusReport, error) {
			close(entered)
			<-release
			return report(txRef, entity.PaymentPending), nil
		}).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.poller.TriggerScan(context.Background())
		done <- err
	}()
	<-entered

	_, err := f.poller.TriggerScan(context.Background())
	assert.ErrorIs(t, err, errs.ErrScanInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestPoller_RunScansOnTick(t *testing.T) {
	f := newFixture(t)
	f.open(t, "TX1", entity.TypeDeposit, "1", "")
	f.clock.Advance(10 * time.Minute)

	var queried atomic.Bool
	f.client.EXPECT().QueryStatus(mock.Anything, "TX1").RunAndReturn(
		func(ctx context.Context, txRef string) (*gateway.StatusReport, error) {
			queried.Store(true)
			return report(txRef, entity.PaymentSucceeded), nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		f.poller.Run(ctx)
		close(stopped)
	}()

	assert.Eventually(t, func() bool {
		f.clock.Tick()
		status, err := f.service.GetStatus(context.Background(), "TX1")
		return queried.Load() && err == nil && status == entity.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestPoller_ListingFailure(t *testing.T) {
	repo := mpers.NewMockTransactionRepository(t)
	storeErr := errors.New("store down")
	cutoff := epoch.Add(-testConfig.StaleAfter)
	repo.EXPECT().ListStalePending(mock.Anything, mock.MatchedBy(func(at time.Time) bool { return at.Equal(cutoff) }), testConfig.BatchSize).Return(nil, storeErr)

	poller := reconciliation.NewPoller(repo, mgw.NewMockStatusClient(t), muse.NewMockLedgerMutator(t),
		testConfig, timeProvider.NewManualTimeProvider(epoch), logger.NewNoopLogger())

	scan, err := poller.TriggerScan(context.Background())

	assert.Nil(t, scan)
	assert.ErrorIs(t, err, storeErr)
}

func TestPoller_MutatorErrorIsIsolated(t *testing.T) {
	repo := mpers.NewMockTransactionRepository(t)
	client := mgw.NewMockStatusClient(t)
	mutator := muse.NewMockLedgerMutator(t)
	rows := []*entity.Transaction{
		{TxRef: "TX1", UserID: "U1", Type: entity.TypeDeposit, AmountInCents: 100, Status: entity.StatusPending},
		{TxRef: "TX2", UserID: "U1", Type: entity.TypeDeposit, AmountInCents: 200, Status: entity.StatusPending},
	}
	repo.EXPECT().ListStalePending(mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)
	repo.EXPECT().MarkChecked(mock.Anything, []string{"TX1", "TX2"}, mock.MatchedBy(func(at time.Time) bool { return at.Equal(epoch) })).
		Return(errs.ErrStoreUnavailable)
	client.EXPECT().QueryStatus(mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, txRef string) (*gateway.StatusReport, error) {
			return report(txRef, entity.PaymentSucceeded), nil
		})
	mutator.EXPECT().Apply(mock.Anything, mock.MatchedBy(func(r usecase.ApplyRequest) bool { return r.TxRef == "TX1" })).
		Return(nil, errs.ErrStoreUnavailable)
	mutator.EXPECT().Apply(mock.Anything, mock.MatchedBy(func(r usecase.ApplyRequest) bool {
		return r.TxRef == "TX2" && r.Source == entity.SourceReconciliation && r.AmountInCents == 200
	})).Return(&usecase.ApplyResult{Outcome: usecase.OutcomeAlreadyApplied}, nil)

	poller := reconciliation.NewPoller(repo, client, mutator, testConfig,
		timeProvider.NewManualTimeProvider(epoch), logger.NewNoopLogger())

	scan, err := poller.TriggerScan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, scan.Examined)
	assert.Equal(t, 1, scan.AlreadyApplied)
	require.Len(t, scan.Errors, 1)
	assert.Equal(t, "TX1", scan.Errors[0].TxRef)
}
