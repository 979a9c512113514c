package model

import (
	"time"

	"github.com/google/uuid"
)

// WelcomeGiftModel mirrors the 'welcome_gifts' table.
type WelcomeGiftModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	MembershipID uuid.UUID `gorm:"type:uuid;not null;index"`
	GiftType     string    `gorm:"type:varchar(32);not null"`
	Description  string    `gorm:"type:text"`
	IsRedeemed   bool      `gorm:"not null"`
	RedeemedAt   *time.Time
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (WelcomeGiftModel) TableName() string {
	return "welcome_gifts"
}
