package model

import (
	"time"

	"github.com/google/uuid"
)

// VipEventModel mirrors the 'vip_events' table.
type VipEventModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	EventDate    time.Time `gorm:"not null;index"`
	ImageURL     string    `gorm:"type:varchar(512)"`
	RequiredTier string    `gorm:"type:varchar(16);not null"`
	MaxAttendees *int
	IsActive     bool `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (VipEventModel) TableName() string {
	return "vip_events"
}

// EventAttendeeModel mirrors the 'event_attendees' table. A user RSVPs to an event at most once.
type EventAttendeeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendees_event_user"`
	UserID       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_event_attendees_event_user"`
	MembershipID uuid.UUID `gorm:"type:uuid;not null"`
	RsvpDate     time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EventAttendeeModel) TableName() string {
	return "event_attendees"
}

// All lists every model, in dependency order, for schema tooling.
func All() []any {
	return []any{
		&UserModel{},
		&MembershipModel{},
		&TransactionModel{},
		&WelcomeGiftModel{},
		&VipEventModel{},
		&EventAttendeeModel{},
	}
}
