package models

import "time"

// SuggestionStatus defines lifecycle states for court edit suggestions.
type SuggestionStatus string

const (
	// SuggestionStatusPending indicates the suggestion is awaiting review.
	SuggestionStatusPending SuggestionStatus = "pending"
	// SuggestionStatusApproved indicates the suggestion was accepted.
	SuggestionStatusApproved SuggestionStatus = "approved"
	// SuggestionStatusRejected indicates the suggestion was declined.
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

// MaxSuggestionReasonLen bounds the free-text rationale on a suggestion.
const MaxSuggestionReasonLen = 500

// EditSuggestion is a user-proposed change to one court. Each Suggested*
// field is nil when no change is proposed for that field.
type EditSuggestion struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	CourtID             uint   `gorm:"not null;index" json:"court_id"`
	Court               *Court `gorm:"foreignKey:CourtID" json:"court,omitempty"`
	SubmittedByUserID   uint   `gorm:"not null;index" json:"submitted_by_user_id"`
	SubmittedByUserName string `gorm:"size:80" json:"submitted_by_user_name"`

	SuggestedName           *string `gorm:"size:120" json:"suggested_name,omitempty"`
	SuggestedAddress        *string `gorm:"size:255" json:"suggested_address,omitempty"`
	SuggestedCity           *string `gorm:"size:80" json:"suggested_city,omitempty"`
	SuggestedState          *string `gorm:"size:40" json:"suggested_state,omitempty"`
	SuggestedZip            *string `gorm:"size:16" json:"suggested_zip,omitempty"`
	SuggestedCourtType      *string `gorm:"size:60" json:"suggested_court_type,omitempty"`
	SuggestedNumberOfCourts *int    `json:"suggested_number_of_courts,omitempty"`
	SuggestedSurface        *string `gorm:"size:40" json:"suggested_surface,omitempty"`
	SuggestedCondition      *string `gorm:"size:40" json:"suggested_condition,omitempty"`
	SuggestedHittingWall    *bool   `json:"suggested_hitting_wall,omitempty"`
	SuggestedLights         *bool   `json:"suggested_lights,omitempty"`
	SuggestedIsPublic       *bool   `json:"suggested_is_public,omitempty"`

	Reason             string           `gorm:"type:text;not null" json:"reason"`
	Status             SuggestionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewNote         string           `gorm:"type:text" json:"review_note"`
	ReviewedByUserID   *uint            `json:"reviewed_by_user_id"`
	ReviewedByUserName string           `gorm:"size:80" json:"reviewed_by_user_name"`

	FieldDecisions []SuggestionFieldDecision `gorm:"foreignKey:SuggestionID" json:"field_decisions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (EditSuggestion) TableName() string {
	return "edit_suggestions"
}

// Canonical field names used by field-scoped review. They double as the court
// column names targeted by an approval.
const (
	FieldName           = "name"
	FieldAddress        = "address"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZip            = "zip"
	FieldCourtType      = "court_type"
	FieldNumberOfCourts = "number_of_courts"
	FieldSurface        = "surface"
	FieldCondition      = "condition"
	FieldHittingWall    = "hitting_wall"
	FieldLights         = "lights"
	FieldIsPublic       = "is_public"
)

// SuggestionFields lists every reviewable field name in a stable order.
var SuggestionFields = []string{
	FieldName,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldZip,
	FieldCourtType,
	FieldNumberOfCourts,
	FieldSurface,
	FieldCondition,
	FieldHittingWall,
	FieldLights,
	FieldIsPublic,
}

// ProposedValue returns the suggested value for the named field and whether
// the suggestion proposes that field at all.
func (s *EditSuggestion) ProposedValue(field string) (interface{}, bool) {
	switch field {
	case FieldName:
		if s.SuggestedName != nil {
			return *s.SuggestedName, true
		}
	case FieldAddress:
		if s.SuggestedAddress != nil {
			return *s.SuggestedAddress, true
		}
	case FieldCity:
		if s.SuggestedCity != nil {
			return *s.SuggestedCity, true
		}
	case FieldState:
		if s.SuggestedState != nil {
			return *s.SuggestedState, true
		}
	case FieldZip:
		if s.SuggestedZip != nil {
			return *s.SuggestedZip, true
		}
	case FieldCourtType:
		if s.SuggestedCourtType != nil {
			return *s.SuggestedCourtType, true
		}
	case FieldNumberOfCourts:
		if s.SuggestedNumberOfCourts != nil {
			return *s.SuggestedNumberOfCourts, true
		}
	case FieldSurface:
		if s.SuggestedSurface != nil {
			return *s.SuggestedSurface, true
		}
	case FieldCondition:
		if s.SuggestedCondition != nil {
			return *s.SuggestedCondition, true
		}
	case FieldHittingWall:
		if s.SuggestedHittingWall != nil {
			return *s.SuggestedHittingWall, true
		}
	case FieldLights:
		if s.SuggestedLights != nil {
			return *s.SuggestedLights, true
		}
	case FieldIsPublic:
		if s.SuggestedIsPublic != nil {
			return *s.SuggestedIsPublic, true
		}
	}
	return nil, false
}

// ProposedFields returns column -> value for every field this suggestion
// proposes. The map feeds a partial GORM update, so untouched court columns
// stay exactly as they were.
func (s *EditSuggestion) ProposedFields() map[string]interface{} {
	out := map[string]interface{}{}
	for _, f := range SuggestionFields {
		if v, ok := s.ProposedValue(f); ok {
			out[f] = v
		}
	}
	return out
}

// ProposedFieldNames returns the names of all proposed fields in stable order.
func (s *EditSuggestion) ProposedFieldNames() []string {
	var out []string
	for _, f := range SuggestionFields {
		if _, ok := s.ProposedValue(f); ok {
			out = append(out, f)
		}
	}
	return out
}

// SuggestionFieldDecision records the resolution of a single proposed field.
// A suggestion is terminal once every proposed field has a decision row (or a
// whole-suggestion decision was made, which back-fills the rows).
type SuggestionFieldDecision struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	SuggestionID     uint             `gorm:"not null;uniqueIndex:idx_suggestion_field" json:"suggestion_id"`
	Field            string           `gorm:"size:40;not null;uniqueIndex:idx_suggestion_field" json:"field"`
	Status           SuggestionStatus `gorm:"type:varchar(20);not null" json:"status"`
	ReviewedByUserID uint             `gorm:"not null" json:"reviewed_by_user_id"`
	ReviewNote       string           `gorm:"type:text" json:"review_note"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SuggestionFieldDecision) TableName() string {
	return "suggestion_field_decisions"
}
