package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel mirrors the append-only 'transactions' table.
type TransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          string          `gorm:"type:varchar(255);not null;index"`
	MembershipID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"type:varchar(16);not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency        string          `gorm:"type:char(3);not null"`
	Description     string          `gorm:"type:text"`
	DiscountApplied decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StaffID         *string         `gorm:"type:varchar(255)"`
	CreatedAt       time.Time       `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
