package database

import "courtmap/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Court{},
		&models.EditSuggestion{},
		&models.SuggestionFieldDecision{},
		&models.Review{},
		&models.CourtPhoto{},
		&models.Report{},
		&models.UserBan{},
	}
}
