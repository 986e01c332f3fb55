package models

import "time"

// ReportTargetType identifies what kind of content a report is aimed at.
type ReportTargetType string

const (
	ReportTargetReview     ReportTargetType = "review"
	ReportTargetPhoto      ReportTargetType = "photo"
	ReportTargetSuggestion ReportTargetType = "suggestion"
)

// ValidReportTarget reports whether t is a known report target type.
func ValidReportTarget(t ReportTargetType) bool {
	switch t {
	case ReportTargetReview, ReportTargetPhoto, ReportTargetSuggestion:
		return true
	}
	return false
}

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusOpen      ReportStatus = "open"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Report is a user-filed complaint about a piece of submitted content.
type Report struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	ReporterID     uint             `gorm:"not null;index" json:"reporter_id"`
	Reporter       *User            `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	TargetType     ReportTargetType `gorm:"size:20;not null;index" json:"target_type"`
	TargetID       uint             `gorm:"not null;index" json:"target_id"`
	ReportedUserID *uint            `gorm:"index" json:"reported_user_id"`
	ReportedUser   *User            `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`
	Reason         string           `gorm:"size:255;not null" json:"reason"`
	Details        string           `gorm:"type:text" json:"details"`

	Status           ReportStatus `gorm:"size:20;not null;default:'open';index" json:"status"`
	ResolvedByUserID *uint        `json:"resolved_by_user_id"`
	ResolvedByUser   *User        `gorm:"foreignKey:ResolvedByUserID" json:"resolved_by_user,omitempty"`
	ResolutionNote   string       `gorm:"type:text" json:"resolution_note"`
	ResolvedAt       *time.Time   `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Report) TableName() string {
	return "reports"
}
