package models

import (
	"time"

	"gorm.io/gorm"
)

// CourtPhoto is a user-uploaded photo of a court. The binary lives in object
// storage under ObjectKey; URL is the public address handed to clients.
type CourtPhoto struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CourtID   uint           `gorm:"not null;index" json:"court_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ObjectKey string         `gorm:"size:255;not null" json:"-"`
	URL       string         `gorm:"size:512;not null" json:"url"`
	Caption   string         `gorm:"size:255" json:"caption"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (CourtPhoto) TableName() string {
	return "court_photos"
}
