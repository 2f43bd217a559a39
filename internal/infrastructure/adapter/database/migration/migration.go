package migration

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
		"dialect":        m.db.Dialector.Name(),
	})

	db := m.db.WithContext(ctx)

	// The version table must exist before the current version can be read
	if err := db.AutoMigrate(&model.SchemaVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := db.AutoMigrate(&model.Account{}, &model.Transaction{}); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(db); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Partial and BRIN indexes only exist on PostgreSQL
	if m.db.Dialector.Name() == "postgres" {
		if err := m.advancedIndexMgr.CreateAdvancedIndexes(ctx); err != nil {
			m.logger.Error("Failed to create advanced indexes", map[string]any{
				"error": err.Error(),
			})
			return err
		}
		m.advancedIndexMgr.CreatePerformanceTweaks(ctx)
	}

	if err := m.setVersion(ctx, CurrentSchemaVersion, "Ledger schema: accounts, transactions with reconciliation check stamps"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"from_version": currentVersion,
		"version":      CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.SchemaVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").Order("id desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version, description string) error {
	var appliedAt time.Time
	if m.timeProvider != nil {
		appliedAt = m.timeProvider.Now()
	} else {
		appliedAt = time.Now().UTC()
	}

	record := model.SchemaVersion{
		Version:     version,
		Dialect:     m.db.Dialector.Name(),
		Description: description,
		AppliedAt:   appliedAt,
	}

	return m.db.WithContext(ctx).Create(&record).Error
}

// createIndexes creates the indexes every dialect supports
func (m *MigrationManager) createIndexes(db *gorm.DB) error {
	m.logger.Info("Creating database indexes", nil)

	statements := []string{
		// The ledger relies on this index to reject a second row for the same gateway reference
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_tx_ref_unique ON transactions (tx_ref)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions (user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_schema_versions_applied ON schema_versions (applied_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_status_created_at ON transactions (status, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_status_last_checked ON transactions (status, last_checked_at)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
