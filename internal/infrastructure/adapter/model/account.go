package model

import (
	"time"
)

// Account is the database row holding a user's settled balance
type Account struct {
	UserID    string    `gorm:"column:user_id;primaryKey;size:64"`
	Balance   int64     `gorm:"not null;default:0;check:chk_accounts_balance_non_negative,balance >= 0"` // cents
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
