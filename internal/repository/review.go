package repository

import (
	"context"
	"errors"

	"courtmap/internal/cache"
	"courtmap/internal/database"
	"courtmap/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for court reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	FindByCourtAndUser(ctx context.Context, courtID, userID uint) (*models.Review, error)
	ListByCourt(ctx context.Context, courtID uint, limit, offset int) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) readDB() *gorm.DB {
	if rdb := database.GetReadDB(); rdb != nil {
		return rdb
	}
	return r.db
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourtReviews(ctx, review.CourtID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.readDB().WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) FindByCourtAndUser(ctx context.Context, courtID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.readDB().WithContext(ctx).
		Where("court_id = ? AND user_id = ?", courtID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByCourt(ctx context.Context, courtID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if offset == 0 {
		err := cache.Aside(ctx, cache.CourtReviewsKey(courtID, limit), &reviews, cache.CourtReviewsTTL, func() error {
			return r.fetchByCourt(ctx, courtID, limit, 0, &reviews)
		})
		if err != nil {
			return nil, err
		}
		return reviews, nil
	}
	if err := r.fetchByCourt(ctx, courtID, limit, offset, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) fetchByCourt(ctx context.Context, courtID uint, limit, offset int, reviews *[]models.Review) error {
	err := r.readDB().WithContext(ctx).
		Preload("User").
		Where("court_id = ?", courtID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(reviews).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourtReviews(ctx, review.CourtID)
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Review", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourtReviews(ctx, review.CourtID)
	return nil
}
