package model

import (
	"time"
)

// SchemaVersion records one applied ledger schema migration
type SchemaVersion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Version     string    `gorm:"type:varchar(20);not null;index"`
	Dialect     string    `gorm:"type:varchar(16);not null"`
	Description string    `gorm:"type:text"`
	AppliedAt   time.Time `gorm:"not null"`
}

func (SchemaVersion) TableName() string {
	return "schema_versions"
}
