package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipModel mirrors the 'memberships' table.
// The partial unique index allows at most one active membership per user.
type MembershipModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             string          `gorm:"type:varchar(255);not null;index:idx_memberships_active_user,unique,where:is_active"`
	Tier               string          `gorm:"type:varchar(16);not null"`
	Balance            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency           string          `gorm:"type:char(3);not null"`
	DiscountPercentage int             `gorm:"not null"`
	VipEventsRemaining int             `gorm:"not null"`
	ExpiresAt          time.Time       `gorm:"not null"`
	IsActive           bool            `gorm:"not null"`
	Version            int64           `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (MembershipModel) TableName() string {
	return "memberships"
}
