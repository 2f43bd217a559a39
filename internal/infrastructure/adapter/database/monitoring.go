package database

import (
	"time"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// UnitMetrics holds metrics about one unit of work
type UnitMetrics struct {
	Attempts     int
	Duration     time.Duration
	Failed       bool
	ErrorMessage string
}

// MetricsCollector measures units of work and reports slow ones
type MetricsCollector struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider) *MetricsCollector {
	return &MetricsCollector{
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: 250 * time.Millisecond,
	}
}

// MeasureUnit runs fn, which reports how many attempts it made, and logs it when slow or retried
func (c *MetricsCollector) MeasureUnit(fn func() (int, error)) (*UnitMetrics, error) {
	start := c.timeProvider.Now()

	attempts, err := fn()

	metrics := &UnitMetrics{
		Attempts: attempts,
		Duration: c.timeProvider.Since(start),
		Failed:   err != nil,
	}
	if err != nil {
		metrics.ErrorMessage = err.Error()
	}

	if metrics.Duration > c.slowThreshold || attempts > 1 {
		c.logger.Warn("Slow or contended unit of work", map[string]any{
			"duration_ms":   metrics.Duration.Milliseconds(),
			"attempts":      attempts,
			"failed":        metrics.Failed,
			"error_message": metrics.ErrorMessage,
		})
	}

	return metrics, err
}
