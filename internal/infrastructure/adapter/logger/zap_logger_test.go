package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

func observed(level zapcore.Level) (core.Logger, *observer.ObservedLogs) {
	atomic := zap.NewAtomicLevelAt(level)
	zc, logs := observer.New(atomic)
	return NewZapLoggerFromCore(zc, atomic), logs
}

func TestZapLogger_Fields(t *testing.T) {
	log, logs := observed(zap.DebugLevel)

	log.With(map[string]any{"component": "ledger"}).Warn("Withdrawal rejected", map[string]any{
		"tx_ref": "TX2",
		"error":  errors.New("insufficient balance"),
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, "Withdrawal rejected", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "ledger", fields["component"])
	assert.Equal(t, "TX2", fields["tx_ref"])
	assert.Equal(t, "insufficient balance", fields["error"])
}

func TestZapLogger_SetLevel(t *testing.T) {
	log, logs := observed(zap.InfoLevel)
	child := log.With(map[string]any{"component": "poller"})

	child.Debug("hidden", nil)
	log.SetLevel(core.LogLevelDebug)
	child.Debug("shown", nil)
	log.SetLevel(core.LogLevelError)
	child.Info("hidden", nil)
	child.Error("shown", nil)

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "shown", entry.Message)
	}
}
