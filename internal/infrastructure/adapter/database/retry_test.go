package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
)

func TestRetryOnTransientError(t *testing.T) {
	config := RetryConfig{MaxRetries: 3, RetryInterval: 10 * time.Millisecond, MaxInterval: time.Second}
	errBoom := errors.New("boom")

	tests := []struct {
		name         string
		failures     []error
		wantAttempts int
		wantErr      error
	}{
		{name: "first attempt succeeds", wantAttempts: 1},
		{name: "lost insert race is retried", failures: []error{errs.ErrDuplicateTransaction}, wantAttempts: 2},
		{name: "lost update race is retried", failures: []error{errs.ErrConcurrentUpdate, errors.New("database is locked")}, wantAttempts: 3},
		{name: "permanent error stops immediately", failures: []error{errBoom}, wantAttempts: 1, wantErr: errBoom},
		{name: "deadline is not retried", failures: []error{context.DeadlineExceeded}, wantAttempts: 1, wantErr: context.DeadlineExceeded},
		{
			name:         "gives up after max retries",
			failures:     []error{errs.ErrConcurrentUpdate, errs.ErrConcurrentUpdate, errs.ErrConcurrentUpdate, errs.ErrConcurrentUpdate},
			wantAttempts: 3,
			wantErr:      errs.ErrConcurrentUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
			clock := timeProvider.NewManualTimeProvider(start)
			attempts := 0

			// Act
			err := RetryOnTransientError(context.Background(), config, func() error {
				attempts++
				if attempts <= len(tt.failures) {
					return tt.failures[attempts-1]
				}
				return nil
			}, clock, logger.NewNoopLogger())

			// Assert
			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantAttempts > 1 {
				assert.True(t, clock.Now().After(start), "backoff waits on the clock")
			}
		})
	}
}

func TestRetryOnTransientError_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clock := timeProvider.NewManualTimeProvider(time.Now())

	err := RetryOnTransientError(ctx, DefaultRetryConfig(), func() error {
		return errs.ErrConcurrentUpdate
	}, clock, logger.NewNoopLogger())

	assert.ErrorIs(t, err, errs.ErrConcurrentUpdate)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	config := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, calculateBackoffWithJitter(0, config))
	assert.Equal(t, 40*time.Millisecond, calculateBackoffWithJitter(2, config))
	assert.Equal(t, 50*time.Millisecond, calculateBackoffWithJitter(5, config))

	config.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		backoff := calculateBackoffWithJitter(1, config)
		assert.GreaterOrEqual(t, backoff, 20*time.Millisecond)
		assert.LessOrEqual(t, backoff, 30*time.Millisecond)
	}
}
