package logger

import (
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// NoopLogger implements the Logger interface but doesn't do anything
// Useful for testing or when logging is disabled
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() core.Logger {
	return &NoopLogger{}
}

// SetLevel sets the minimum log level to output
func (l *NoopLogger) SetLevel(core.LogLevel) {}

// With returns the same logger
func (l *NoopLogger) With(map[string]any) core.Logger { return l }

// Debug logs debug messages
func (l *NoopLogger) Debug(string, map[string]any) {}

// Info logs informational messages
func (l *NoopLogger) Info(string, map[string]any) {}

// Warn logs warning messages
func (l *NoopLogger) Warn(string, map[string]any) {}

// Error logs errors messages
func (l *NoopLogger) Error(string, map[string]any) {}

// Flush ensures all buffered logs are written to their destination
func (l *NoopLogger) Flush() error { return nil }
