package model

import (
	"time"
)

// UserModel mirrors the 'users' table. ID is the identity provider subject.
type UserModel struct {
	ID              string `gorm:"type:varchar(255);primaryKey"`
	Email           string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName       string `gorm:"type:varchar(100)"`
	LastName        string `gorm:"type:varchar(100)"`
	ProfileImageURL string `gorm:"type:varchar(512)"`
	Language        string `gorm:"type:char(2);not null"`
	IsAdmin         bool   `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
