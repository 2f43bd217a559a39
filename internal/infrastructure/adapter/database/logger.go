package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// DatabaseLogger is a GORM logger that writes through the application logger
type DatabaseLogger struct {
	coreLogger    coreport.Logger
	logLevel      logger.LogLevel
	slowThreshold time.Duration
	timeProvider  coreport.TimeProvider
}

// NewDatabaseLogger creates a new database logger
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string) logger.Interface {
	return &DatabaseLogger{
		coreLogger:    coreLogger,
		logLevel:      parseGormLevel(level),
		slowThreshold: 200 * time.Millisecond,
		timeProvider:  timeProvider,
	}
}

func parseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

// LogMode sets the log level for the logger
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// WithSlowThreshold returns a new logger with updated slow threshold
func (l *DatabaseLogger) WithSlowThreshold(threshold time.Duration) logger.Interface {
	newLogger := *l
	newLogger.slowThreshold = threshold
	return &newLogger
}

// Info logs info messages
func (l *DatabaseLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(msg, map[string]any{"source": "database", "data": data})
	}
}

// Warn logs warn messages
func (l *DatabaseLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(msg, map[string]any{"source": "database", "data": data})
	}
}

// Error logs error messages
func (l *DatabaseLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(msg, map[string]any{"source": "database", "data": data})
	}
}

// Trace logs SQL operations
func (l *DatabaseLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	var elapsed time.Duration
	if l.timeProvider != nil {
		elapsed = l.timeProvider.Since(begin)
	} else {
		elapsed = time.Since(begin)
	}

	sql, rows := fc()

	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
		"source":  "database",
	}

	if queryType := extractQueryType(sql); queryType != "" {
		fields["type"] = queryType
	}
	if tableName := extractTableName(sql); tableName != "" {
		fields["table"] = tableName
	}
	if requestID := coreport.RequestIDFromContext(ctx); requestID != "" {
		fields["request_id"] = requestID
	}

	// Lookups that find nothing are normal control flow for the ledger
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	switch {
	case err != nil && l.logLevel >= logger.Error:
		l.coreLogger.Error("SQL Error", fields)
	case elapsed > l.slowThreshold && l.slowThreshold > 0 && l.logLevel >= logger.Warn:
		l.coreLogger.Warn("Slow SQL Query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL Query", fields)
	}
}

// extractQueryType determines the type of SQL query (SELECT, INSERT, UPDATE, DELETE)
func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	for _, kind := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sqlUpper, kind) {
			return kind
		}
	}
	return ""
}

// extractTableName attempts to extract the table name from the SQL query
func extractTableName(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	var fromIndex int
	switch {
	case strings.Contains(sqlUpper, " FROM "):
		fromIndex = strings.Index(sqlUpper, " FROM ") + 6
	case strings.Contains(sqlUpper, " INTO "):
		fromIndex = strings.Index(sqlUpper, " INTO ") + 6
	case strings.HasPrefix(sqlUpper, "UPDATE "):
		fromIndex = 7
	default:
		return ""
	}

	remainder := strings.Trim(sqlUpper[fromIndex:], " \"`")
	if spaceIndex := strings.IndexAny(remainder, " \"`"); spaceIndex != -1 {
		return strings.ToLower(remainder[:spaceIndex])
	}
	return strings.ToLower(remainder)
}
