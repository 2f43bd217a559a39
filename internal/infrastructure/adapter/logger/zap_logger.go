package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Options configures the zap logger
type Options struct {
	Production bool   // JSON encoding and ISO8601 timestamps
	Level      string // debug, info, warn or error
	Format     string // json or console; overrides the Production default when set
	Output     string // stdout, stderr or a file path
	CallerInfo bool
}

// ZapLogger implements the Logger interface using Zap
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a new zap-based logger instance
func NewZapLogger(opts Options) core.Logger {
	var cfg zap.Config

	if opts.Production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	switch opts.Format {
	case "json":
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case "console":
		cfg.Encoding = "console"
	}
	if opts.Output != "" {
		cfg.OutputPaths = []string{opts.Output}
	}
	cfg.DisableCaller = !opts.CallerInfo

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"

	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(core.ParseLogLevel(opts.Level)))

	zapLogger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return &ZapLogger{
		logger: zapLogger,
		level:  cfg.Level,
	}
}

// NewZapLoggerFromCore wraps an existing zap core, mainly for tests that observe log output
func NewZapLoggerFromCore(c zapcore.Core, level zap.AtomicLevel) core.Logger {
	return &ZapLogger{logger: zap.New(c), level: level}
}

// NewDefaultLogger creates a standard logger for the application
func NewDefaultLogger() core.Logger {
	return NewZapLogger(Options{Level: "info", CallerInfo: true})
}

func toZapLevel(level core.LogLevel) zapcore.Level {
	switch level {
	case core.LogLevelDebug:
		return zap.DebugLevel
	case core.LogLevelWarn:
		return zap.WarnLevel
	case core.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// SetLevel sets the minimum log level. Child loggers created with With share the level.
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level.SetLevel(toZapLevel(level))
}

// With returns a child logger that adds fields to every entry
func (l *ZapLogger) With(fields map[string]any) core.Logger {
	return &ZapLogger{
		logger: l.logger.With(mapToZapFields(fields)...),
		level:  l.level,
	}
}

// mapToZapFields converts a map of fields to zap fields
func mapToZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok {
			zapFields = append(zapFields, zap.NamedError(k, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// Debug logs debug messages
func (l *ZapLogger) Debug(message string, fields map[string]any) {
	if !l.level.Enabled(zap.DebugLevel) {
		return
	}
	l.logger.Debug(message, mapToZapFields(fields)...)
}

// Info logs informational messages
func (l *ZapLogger) Info(message string, fields map[string]any) {
	if !l.level.Enabled(zap.InfoLevel) {
		return
	}
	l.logger.Info(message, mapToZapFields(fields)...)
}

// Warn logs warning messages
func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.logger.Warn(message, mapToZapFields(fields)...)
}

// Error logs error messages
func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.logger.Error(message, mapToZapFields(fields)...)
}

// Flush ensures all buffered logs are written
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}
