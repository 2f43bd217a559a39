package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

// CreateAdvancedIndexes creates PostgreSQL partial and BRIN indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	statements := []indexStatement{
		{
			// Keeps the reconciliation scan cheap as settled history grows
			name: "idx_transactions_pending_created_at",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_pending_created_at
				ON transactions (created_at)
				WHERE status = 'pending'`,
		},
		{
			name: "idx_transactions_completed_user",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_completed_user
				ON transactions (user_id, type)
				WHERE status = 'completed'`,
		},
		{
			name: "idx_transactions_created_at_brin",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
				ON transactions USING BRIN (created_at)
				WITH (pages_per_range = 32)`,
		},
	}

	db := m.db.WithContext(ctx)
	for _, stmt := range statements {
		if err := db.Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create advanced index", map[string]any{
				"index": stmt.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage tweaks. Failures are logged, not returned.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	db := m.db.WithContext(ctx)

	// Status transitions update rows in place
	if err := db.Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := db.Exec(`ALTER TABLE transactions ALTER COLUMN user_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for user_id", map[string]any{
			"error": err.Error(),
		})
	}
}
