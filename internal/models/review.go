package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a user rating and comment on a court.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CourtID   uint           `gorm:"not null;index" json:"court_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int            `gorm:"not null" json:"rating"`
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Review) TableName() string {
	return "reviews"
}
