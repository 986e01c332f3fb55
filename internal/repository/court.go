package repository

import (
	"context"
	"errors"

	"courtmap/internal/cache"
	"courtmap/internal/database"
	"courtmap/internal/models"

	"gorm.io/gorm"
)

// CourtListFilter narrows a court listing; empty fields match everything.
type CourtListFilter struct {
	City      string
	State     string
	Surface   string
	CourtType string
}

// CourtRepository defines persistence operations for courts.
type CourtRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Court, error)
	List(ctx context.Context, filter CourtListFilter, limit, offset int) ([]models.Court, error)
	Create(ctx context.Context, court *models.Court) error
	// UpdateFields applies a partial update of column => value pairs.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type courtRepository struct {
	db *gorm.DB
}

// NewCourtRepository returns a new CourtRepository implementation.
func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) readDB() *gorm.DB {
	if rdb := database.GetReadDB(); rdb != nil {
		return rdb
	}
	return r.db
}

func (r *courtRepository) GetByID(ctx context.Context, id uint) (*models.Court, error) {
	var court models.Court
	key := cache.CourtKey(id)

	err := cache.Aside(ctx, key, &court, cache.CourtTTL, func() error {
		if err := r.readDB().WithContext(ctx).First(&court, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Court", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) List(ctx context.Context, filter CourtListFilter, limit, offset int) ([]models.Court, error) {
	var courts []models.Court
	q := r.readDB().WithContext(ctx).Order("name ASC").Limit(limit).Offset(offset)
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	if filter.Surface != "" {
		q = q.Where("surface = ?", filter.Surface)
	}
	if filter.CourtType != "" {
		q = q.Where("court_type = ?", filter.CourtType)
	}
	if err := q.Find(&courts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courts, nil
}

func (r *courtRepository) Create(ctx context.Context, court *models.Court) error {
	if err := r.db.WithContext(ctx).Create(court).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourtLists(ctx)
	return nil
}

func (r *courtRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Court{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Court", id)
	}
	cache.InvalidateCourt(ctx, id)
	return nil
}

// Delete soft-deletes the court and everything scoped to it.
func (r *courtRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Court{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Court", id)
		}
		if err := tx.Where("court_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", id).Delete(&models.CourtPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", id).Delete(&models.EditSuggestion{}).Error; err != nil {
			return err
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
	cache.InvalidateCourt(ctx, id)
	cache.InvalidateCourtReviews(ctx, id)
	cache.InvalidateCourtPhotos(ctx, id)
	return nil
}
