package database

import (
	"context"
	"errors"
	"math/rand"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/repository"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Factor to add randomness to retry intervals (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    5,
		RetryInterval: 20 * time.Millisecond,
		MaxInterval:   time.Second,
		JitterFactor:  0.2,
	}
}

var classifier = repository.NewErrorClassifier()

// RetryOnTransientError runs operation until it succeeds, fails with a non-retryable error,
// or MaxRetries attempts have been made.
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) error {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}

	var err error
	var attempt int

	for attempt = 0; attempt < config.MaxRetries; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}

		if !isTransientError(err) {
			return err
		}
		if attempt == config.MaxRetries-1 {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, config)
		logger.Warn("Transient database error, retrying operation", map[string]any{
			"attempt":     attempt + 1,
			"max_retries": config.MaxRetries,
			"error":       err.Error(),
			"retry_after": backoff.String(),
		})

		if waitErr := timeProvider.After(ctx, backoff); waitErr != nil {
			logger.Warn("Retry operation canceled by context", map[string]any{
				"attempts":    attempt + 1,
				"max_retries": config.MaxRetries,
				"error":       waitErr.Error(),
			})
			return errors.Join(err, waitErr)
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"attempts":    attempt + 1,
		"max_retries": config.MaxRetries,
		"error":       err.Error(),
	})

	return err
}

// calculateBackoffWithJitter computes the backoff duration with exponential increase and jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))

	if backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		jitter := time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
		backoff += jitter
	}

	return backoff
}

// isTransientError reports whether a whole unit of work may succeed if run again.
// Lost races on the unique index or the pending-only update qualify, as do lock conflicts.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errs.IsRetryable(err) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return classifier.IsLockError(err)
}
