package repository

import (
	"context"
	"errors"

	"courtmap/internal/cache"
	"courtmap/internal/database"
	"courtmap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SuggestionRepository defines persistence operations for court edit suggestions.
type SuggestionRepository interface {
	Create(ctx context.Context, s *models.EditSuggestion) error
	GetByID(ctx context.Context, id uint) (*models.EditSuggestion, error)
	FindPendingByCourtAndUser(ctx context.Context, courtID, userID uint) (*models.EditSuggestion, error)
	ListByCourt(ctx context.Context, courtID uint, status models.SuggestionStatus, limit, offset int) ([]models.EditSuggestion, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.EditSuggestion, error)
	Save(ctx context.Context, s *models.EditSuggestion) error
	Delete(ctx context.Context, id uint) error
	// SaveFieldDecision inserts or updates the decision row for one field of a
	// suggestion. Re-deciding a field before the suggestion is terminal
	// overwrites the previous row.
	SaveFieldDecision(ctx context.Context, d *models.SuggestionFieldDecision) error
}

type suggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository returns a new SuggestionRepository implementation.
func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) readDB() *gorm.DB {
	if rdb := database.GetReadDB(); rdb != nil {
		return rdb
	}
	return r.db
}

func (r *suggestionRepository) Create(ctx context.Context, s *models.EditSuggestion) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePendingSuggestions(ctx)
	return nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id uint) (*models.EditSuggestion, error) {
	var s models.EditSuggestion
	err := r.readDB().WithContext(ctx).
		Preload("FieldDecisions").
		First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Edit suggestion", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &s, nil
}

func (r *suggestionRepository) FindPendingByCourtAndUser(ctx context.Context, courtID, userID uint) (*models.EditSuggestion, error) {
	var s models.EditSuggestion
	err := r.readDB().WithContext(ctx).
		Where("court_id = ? AND submitted_by_user_id = ? AND status = ?", courtID, userID, models.SuggestionStatusPending).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &s, nil
}

func (r *suggestionRepository) ListByCourt(ctx context.Context, courtID uint, status models.SuggestionStatus, limit, offset int) ([]models.EditSuggestion, error) {
	var out []models.EditSuggestion
	q := r.readDB().WithContext(ctx).
		Preload("FieldDecisions").
		Where("court_id = ?", courtID).
		Order("created_at DESC").
		Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}

func (r *suggestionRepository) ListPending(ctx context.Context, limit, offset int) ([]models.EditSuggestion, error) {
	var out []models.EditSuggestion
	if offset == 0 {
		err := cache.Aside(ctx, cache.PendingSuggestionsKey(limit), &out, cache.SuggestionQueueTTL, func() error {
			return r.fetchPending(ctx, limit, 0, &out)
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	if err := r.fetchPending(ctx, limit, offset, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *suggestionRepository) fetchPending(ctx context.Context, limit, offset int, out *[]models.EditSuggestion) error {
	err := r.readDB().WithContext(ctx).
		Preload("FieldDecisions").
		Where("status = ?", models.SuggestionStatusPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(out).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *suggestionRepository) Save(ctx context.Context, s *models.EditSuggestion) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePendingSuggestions(ctx)
	return nil
}

func (r *suggestionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("suggestion_id = ?", id).Delete(&models.SuggestionFieldDecision{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.EditSuggestion{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Edit suggestion", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePendingSuggestions(ctx)
	return nil
}

func (r *suggestionRepository) SaveFieldDecision(ctx context.Context, d *models.SuggestionFieldDecision) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "suggestion_id"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "reviewed_by_user_id", "review_note", "updated_at"}),
		}).
		Create(d).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
