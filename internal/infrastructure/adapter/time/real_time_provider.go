package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with real time operations.
// Times are reported in UTC so stored timestamps compare consistently across drivers.
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// NewTicker returns a ticker backed by time.Ticker
func (p *RealTimeProvider) NewTicker(d time.Duration) core.Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

// After waits for d or until ctx is done
func (p *RealTimeProvider) After(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }

func (r *realTicker) Stop() { r.t.Stop() }
