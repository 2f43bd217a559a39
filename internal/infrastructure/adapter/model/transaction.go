package model

import (
	"time"
)

// Transaction represents the database model for gateway transactions
type Transaction struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement"`
	TxRef         string     `gorm:"not null;size:255"`
	UserID        string     `gorm:"not null;size:64"`
	Type          string     `gorm:"not null;size:20"`
	AmountInCents int64      `gorm:"not null"`
	FeeInCents    int64      `gorm:"not null;default:0"`
	Status        string     `gorm:"not null;size:20"`
	Source        string     `gorm:"not null;size:20"`
	ResolvedBy    string     `gorm:"size:100"`
	RawPayload    string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"not null"`
	ProcessedAt   *time.Time
	LastCheckedAt *time.Time
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
