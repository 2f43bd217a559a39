package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// ManualTimeProvider is a TimeProvider whose clock only moves when told to.
// After returns immediately and advances the clock; tickers fire on Tick.
type ManualTimeProvider struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualTimeProvider creates a clock stopped at start
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{now: start.UTC()}
}

var _ core.TimeProvider = (*ManualTimeProvider)(nil)

// Now returns the current manual time
func (p *ManualTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

// Since returns the manual time elapsed since t
func (p *ManualTimeProvider) Since(t time.Time) time.Duration {
	return p.Now().Sub(t)
}

// Set moves the clock to t
func (p *ManualTimeProvider) Set(t time.Time) {
	p.mu.Lock()
	p.now = t.UTC()
	p.mu.Unlock()
}

// Advance moves the clock forward by d
func (p *ManualTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	p.now = p.now.Add(d)
	p.mu.Unlock()
}

// WithTimeout uses a real deadline so blocked I/O is still released
func (p *ManualTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// NewTicker returns a ticker that fires once per call to Tick
func (p *ManualTimeProvider) NewTicker(time.Duration) core.Ticker {
	t := &manualTicker{c: make(chan time.Time, 1)}
	p.mu.Lock()
	p.tickers = append(p.tickers, t)
	p.mu.Unlock()
	return t
}

// Tick fires every live ticker at the current time
func (p *ManualTimeProvider) Tick() {
	p.mu.Lock()
	now := p.now
	tickers := append([]*manualTicker(nil), p.tickers...)
	p.mu.Unlock()

	for _, t := range tickers {
		t.fire(now)
	}
}

// After advances the clock by d without sleeping
func (p *ManualTimeProvider) After(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Advance(d)
	return nil
}

type manualTicker struct {
	mu      sync.Mutex
	c       chan time.Time
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *manualTicker) fire(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	select {
	case t.c <- now:
	default:
	}
}
