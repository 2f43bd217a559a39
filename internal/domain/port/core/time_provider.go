package core

import (
	"context"
	"time"
)

// Ticker delivers ticks on C until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TimeProvider abstracts time operations for the domain
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
	NewTicker(d time.Duration) Ticker
	// After waits for d or until ctx is done, returning ctx.Err() in the latter case
	After(ctx context.Context, d time.Duration) error
}
