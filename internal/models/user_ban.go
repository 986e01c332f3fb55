package models

import "time"

// BanCategory scopes what a banned user may not submit.
type BanCategory string

const (
	// BanCategoryFull blocks every submission category.
	BanCategoryFull BanCategory = "full"
	// BanCategoryReviews blocks review creation only.
	BanCategoryReviews BanCategory = "reviews"
	// BanCategorySuggestions blocks edit-suggestion creation only.
	BanCategorySuggestions BanCategory = "suggestions"
	// BanCategoryPhotos blocks photo uploads only.
	BanCategoryPhotos BanCategory = "photos"
)

// ValidBanCategory reports whether c is a known ban category.
func ValidBanCategory(c BanCategory) bool {
	switch c {
	case BanCategoryFull, BanCategoryReviews, BanCategorySuggestions, BanCategoryPhotos:
		return true
	}
	return false
}

// UserBan restricts a user from one or more content-submission categories.
// ExpiresAt nil means the ban is permanent until revoked.
type UserBan struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category        BanCategory `gorm:"type:varchar(20);not null" json:"category"`
	Reason          string      `gorm:"size:255" json:"reason"`
	CreatedByUserID uint        `gorm:"not null" json:"created_by_user_id"`
	CreatedByUser   *User       `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	ExpiresAt       *time.Time  `json:"expires_at"`
	RevokedAt       *time.Time  `json:"revoked_at"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserBan) TableName() string {
	return "user_bans"
}

// ActiveAt reports whether the ban still blocks submissions at the given time.
func (b *UserBan) ActiveAt(now time.Time) bool {
	if b.RevokedAt != nil {
		return false
	}
	if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false
	}
	return true
}

// Blocks reports whether the ban applies to the given category. A full ban
// blocks all categories.
func (b *UserBan) Blocks(category BanCategory) bool {
	return b.Category == BanCategoryFull || b.Category == category
}
