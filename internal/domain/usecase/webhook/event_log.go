package webhook

import (
	"sync"

	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// DefaultEventLogSize is the capacity used when none is configured
const DefaultEventLogSize = 500

// EventLog is a bounded, process-scoped record of webhook deliveries and security events.
// When full, the oldest entry is overwritten. Safe for concurrent use.
type EventLog struct {
	mu           sync.Mutex
	events       []usecase.WebhookEvent
	next         int
	full         bool
	timeProvider coreport.TimeProvider
}

// NewEventLog creates an event log holding at most capacity entries
func NewEventLog(capacity int, timeProvider coreport.TimeProvider) *EventLog {
	if capacity <= 0 {
		capacity = DefaultEventLogSize
	}
	return &EventLog{
		events:       make([]usecase.WebhookEvent, capacity),
		timeProvider: timeProvider,
	}
}

// Record stores event, stamping its ID and time, and returns the stored copy
func (l *EventLog) Record(event usecase.WebhookEvent) usecase.WebhookEvent {
	event.ID = uuid.NewString()
	event.At = l.timeProvider.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events[l.next] = event
	l.next = (l.next + 1) % len(l.events)
	if l.next == 0 {
		l.full = true
	}
	return event
}

// Recent returns up to limit entries, newest first. A non-positive limit returns all entries.
func (l *EventLog) Recent(limit int) []usecase.WebhookEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	size := l.lenLocked()
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]usecase.WebhookEvent, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.events)) % len(l.events)
		out = append(out, l.events[idx])
	}
	return out
}

// Len returns the number of stored entries
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lenLocked()
}

func (l *EventLog) lenLocked() int {
	if l.full {
		return len(l.events)
	}
	return l.next
}
