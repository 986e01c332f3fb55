package repository

import (
	"context"
	"errors"

	"courtmap/internal/cache"
	"courtmap/internal/database"
	"courtmap/internal/models"

	"gorm.io/gorm"
)

// PhotoRepository defines persistence operations for court photos.
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.CourtPhoto) error
	GetByID(ctx context.Context, id uint) (*models.CourtPhoto, error)
	ListByCourt(ctx context.Context, courtID uint, limit, offset int) ([]models.CourtPhoto, error)
	Delete(ctx context.Context, id uint) error
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository returns a new PhotoRepository implementation.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) readDB() *gorm.DB {
	if rdb := database.GetReadDB(); rdb != nil {
		return rdb
	}
	return r.db
}

func (r *photoRepository) Create(ctx context.Context, photo *models.CourtPhoto) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourtPhotos(ctx, photo.CourtID)
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, id uint) (*models.CourtPhoto, error) {
	var photo models.CourtPhoto
	if err := r.readDB().WithContext(ctx).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Photo", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}

func (r *photoRepository) ListByCourt(ctx context.Context, courtID uint, limit, offset int) ([]models.CourtPhoto, error) {
	var photos []models.CourtPhoto
	if offset == 0 {
		err := cache.Aside(ctx, cache.CourtPhotosKey(courtID, limit), &photos, cache.CourtPhotosTTL, func() error {
			return r.fetchByCourt(ctx, courtID, limit, 0, &photos)
		})
		if err != nil {
			return nil, err
		}
		return photos, nil
	}
	if err := r.fetchByCourt(ctx, courtID, limit, offset, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) fetchByCourt(ctx context.Context, courtID uint, limit, offset int, photos *[]models.CourtPhoto) error {
	err := r.readDB().WithContext(ctx).
		Where("court_id = ?", courtID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(photos).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) Delete(ctx context.Context, id uint) error {
	var photo models.CourtPhoto
	if err := r.db.WithContext(ctx).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Photo", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&photo).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourtPhotos(ctx, photo.CourtID)
	return nil
}
