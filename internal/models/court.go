package models

import (
	"time"

	"gorm.io/gorm"
)

// Court surface and condition values accepted by validation.
const (
	SurfaceHard   = "Hard"
	SurfaceClay   = "Clay"
	SurfaceGrass  = "Grass"
	SurfaceCarpet = "Carpet"
)

// Court is the canonical tennis-court record. It is mutated only by admin
// direct edits or by the suggestion review workflow on approval.
type Court struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:120;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:80;index" json:"city"`
	State   string `gorm:"size:40;index" json:"state"`
	Zip     string `gorm:"size:16" json:"zip"`
	// CourtType describes the venue, e.g. "public park", "club", "school".
	CourtType string `gorm:"size:60" json:"court_type"`
	// NumberOfCourts is nil when unknown; zero is never stored.
	NumberOfCourts *int    `json:"number_of_courts"`
	Surface        string  `gorm:"size:40" json:"surface"`
	Condition      string  `gorm:"size:40" json:"condition"`
	HittingWall    bool    `gorm:"default:false" json:"hitting_wall"`
	Lights         bool    `gorm:"default:false" json:"lights"`
	IsPublic       bool    `gorm:"default:true" json:"is_public"`
	Parking        bool    `gorm:"default:false" json:"parking"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Court) TableName() string {
	return "courts"
}
