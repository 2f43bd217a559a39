package core

// LogLevel represents logging severity levels
type LogLevel int

const (
	// LogLevelDebug for detailed debug information
	LogLevelDebug LogLevel = iota
	// LogLevelInfo for general operational information
	LogLevelInfo
	// LogLevelWarn for warnings
	LogLevelWarn
	// LogLevelError for errors information
	LogLevelError
)

// ParseLogLevel maps a config string to a LogLevel, defaulting to info
func ParseLogLevel(level string) LogLevel {
	switch level {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger defines logging operations
type Logger interface {
	// SetLevel sets the minimum log level to output
	SetLevel(level LogLevel)
	// With returns a child logger that adds fields to every entry
	With(fields map[string]any) Logger
	// Debug logs debug messages
	Debug(message string, fields map[string]any)
	// Info logs informational messages
	Info(message string, fields map[string]any)
	// Warn logs warning messages
	Warn(message string, fields map[string]any)
	// Error logs errors messages
	Error(message string, fields map[string]any)
	// Flush ensures all buffered logs are written to their destination
	Flush() error
}
