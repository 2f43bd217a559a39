// Package dbtest opens migrated SQLite databases for integration tests
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
)

// Env is a migrated database plus the unit of work bound to it
type Env struct {
	Manager *database.Manager
	DB      *gorm.DB
	UoW     persistence.UnitOfWork
}

// Option adjusts the database configuration before connecting
type Option func(*database.Config)

// WithMaxOpenConns sets the pool size
func WithMaxOpenConns(n int) Option {
	return func(c *database.Config) {
		c.MaxOpenConns = n
		c.MaxIdleConns = n
	}
}

// NewSQLite creates a fresh database file under t.TempDir and migrates it.
// The connection is closed when the test ends.
func NewSQLite(t testing.TB, timeProvider coreport.TimeProvider, opts ...Option) *Env {
	t.Helper()

	cfg := &database.Config{
		Driver:        database.DriverSQLite,
		Path:          filepath.Join(t.TempDir(), "ledger.db"),
		MaxOpenConns:  4,
		MaxIdleConns:  4,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "silent",
		RetryAttempts: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	manager := database.NewManager(cfg, logger.NewNoopLogger(), timeProvider).
		WithRetryConfig(database.RetryConfig{
			MaxRetries:    10,
			RetryInterval: time.Millisecond,
			MaxInterval:   20 * time.Millisecond,
			JitterFactor:  0.2,
		})

	db, err := manager.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	require.NoError(t, manager.Migrate(context.Background()))

	return &Env{
		Manager: manager,
		DB:      db,
		UoW:     manager.CreateUnitOfWork(),
	}
}
