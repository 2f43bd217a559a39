package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int           `json:"openConnections"`
	IdleConnections    int           `json:"idleConnections"`
	MaxOpenConnections int           `json:"maxOpenConnections"`
	InUse              int           `json:"inUse"`
	WaitCount          int64         `json:"waitCount"`
	WaitDuration       time.Duration `json:"waitDuration"`
	MaxIdleClosed      int64         `json:"maxIdleClosed"`
	MaxLifetimeClosed  int64         `json:"maxLifetimeClosed"`
}

// ConnectionPoolMonitor periodically samples the connection pool and warns when it is nearly exhausted
type ConnectionPoolMonitor struct {
	db           *Manager
	logger       coreport.Logger
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *Manager, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collectMetrics(); err != nil {
		return err
	}

	ticker := m.db.timeProvider.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C():
				if err := m.collectMetrics(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// GetMetrics returns the last sampled connection pool metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}

	return *m.metricsCache
}

// collectMetrics collects current connection pool metrics
func (m *ConnectionPoolMonitor) collectMetrics() error {
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.metricsCache = &ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}

// HealthReport is the result of a database health check
type HealthReport struct {
	Healthy bool                  `json:"healthy"`
	Dialect string                `json:"dialect"`
	Latency string                `json:"latency"`
	Error   string                `json:"error,omitempty"`
	Pool    ConnectionPoolMetrics `json:"pool"`
}

// HealthChecker pings the database on demand
type HealthChecker struct {
	db           *gorm.DB
	monitor      *ConnectionPoolMonitor
	timeProvider coreport.TimeProvider
	timeout      time.Duration
}

// NewHealthChecker creates a new health checker. monitor may be nil.
func NewHealthChecker(db *gorm.DB, monitor *ConnectionPoolMonitor, timeProvider coreport.TimeProvider) *HealthChecker {
	return &HealthChecker{
		db:           db,
		monitor:      monitor,
		timeProvider: timeProvider,
		timeout:      2 * time.Second,
	}
}

// Check pings the database and reports pool statistics
func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	report := HealthReport{Dialect: h.db.Dialector.Name()}

	sqlDB, err := h.db.DB()
	if err != nil {
		report.Error = err.Error()
		return report
	}

	pingCtx, cancel := h.timeProvider.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := h.timeProvider.Now()
	err = sqlDB.PingContext(pingCtx)
	report.Latency = h.timeProvider.Since(start).String()
	if err != nil {
		report.Error = err.Error()
		return report
	}

	report.Healthy = true
	if h.monitor != nil {
		report.Pool = h.monitor.GetMetrics()
	} else {
		stats := sqlDB.Stats()
		report.Pool = ConnectionPoolMetrics{
			OpenConnections:    stats.OpenConnections,
			IdleConnections:    stats.Idle,
			MaxOpenConnections: stats.MaxOpenConnections,
			InUse:              stats.InUse,
			WaitCount:          stats.WaitCount,
			WaitDuration:       stats.WaitDuration,
		}
	}
	return report
}
