package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/migration"
)

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	errorMapper       *ErrorMapper
	connectionMonitor *ConnectionPoolMonitor
	timeProvider      coreport.TimeProvider
	retryConfig       RetryConfig
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger.With(map[string]any{"component": "database"}),
		errorMapper:  NewErrorMapper(),
		timeProvider: timeProvider,
		retryConfig:  DefaultRetryConfig(),
	}
}

// WithRetryConfig overrides the retry policy used by units of work
func (m *Manager) WithRetryConfig(rc RetryConfig) *Manager {
	m.retryConfig = rc
	return m
}

// Connect establishes a database connection, retrying the initial dial
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
		"path":   m.config.Path,
	})

	attempts := m.config.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	var gormDB *gorm.DB

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt + 1,
				"of":      attempts,
				"delay":   m.config.RetryDelay.String(),
			})
			if waitErr := m.timeProvider.After(ctx, m.config.RetryDelay); waitErr != nil {
				return nil, waitErr
			}
		}

		gormDB, err = m.open()
		if err == nil {
			err = m.ping(ctx, gormDB)
		}
		if err == nil {
			break
		}

		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt + 1,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":         m.config.Driver,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"query_timeout":  m.config.QueryTimeout.String(),
	})

	m.db = gormDB
	m.connectionMonitor = NewConnectionPoolMonitor(m, m.logger)

	if err := m.connectionMonitor.Start(30 * time.Second); err != nil {
		m.logger.Warn("Failed to start connection pool monitoring", map[string]any{"error": err.Error()})
	}

	return m.db, nil
}

func (m *Manager) open() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
	}

	switch m.config.Driver {
	case DriverPostgres:
		gormConfig.PrepareStmt = true
		return gorm.Open(postgres.Open(m.config.DSN()), gormConfig)
	case DriverSQLite:
		return gorm.Open(sqlite.Open(m.config.DSN()), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}
}

func (m *Manager) ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := m.timeProvider.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	return sqlDB.Close()
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider, m.retryConfig)
}

// Migrate brings the schema to the current version
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// HealthChecker returns a checker bound to this connection
func (m *Manager) HealthChecker() *HealthChecker {
	return NewHealthChecker(m.db, m.connectionMonitor, m.timeProvider)
}

// GetErrorMapper returns the error mapper
func (m *Manager) GetErrorMapper() *ErrorMapper {
	return m.errorMapper
}
