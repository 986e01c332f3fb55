package repository

import (
	"context"
	"errors"
	"time"

	"courtmap/internal/database"
	"courtmap/internal/models"

	"gorm.io/gorm"
)

// BanRepository defines persistence operations for user bans.
type BanRepository interface {
	Create(ctx context.Context, ban *models.UserBan) error
	GetByID(ctx context.Context, id uint) (*models.UserBan, error)
	// ListActiveByUser returns bans that are neither revoked nor expired at now.
	ListActiveByUser(ctx context.Context, userID uint, now time.Time) ([]models.UserBan, error)
	ListByUser(ctx context.Context, userID uint) ([]models.UserBan, error)
	List(ctx context.Context, limit, offset int) ([]models.UserBan, error)
	Revoke(ctx context.Context, id uint, now time.Time) error
}

type banRepository struct {
	db *gorm.DB
}

// NewBanRepository returns a new BanRepository implementation.
func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) readDB() *gorm.DB {
	if rdb := database.GetReadDB(); rdb != nil {
		return rdb
	}
	return r.db
}

func (r *banRepository) Create(ctx context.Context, ban *models.UserBan) error {
	if err := r.db.WithContext(ctx).Create(ban).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *banRepository) GetByID(ctx context.Context, id uint) (*models.UserBan, error) {
	var ban models.UserBan
	if err := r.readDB().WithContext(ctx).First(&ban, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ban", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ban, nil
}

func (r *banRepository) ListActiveByUser(ctx context.Context, userID uint, now time.Time) ([]models.UserBan, error) {
	var bans []models.UserBan
	err := r.readDB().WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND (expires_at IS NULL OR expires_at > ?)", userID, now).
		Find(&bans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bans, nil
}

func (r *banRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserBan, error) {
	var bans []models.UserBan
	err := r.readDB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bans, nil
}

func (r *banRepository) List(ctx context.Context, limit, offset int) ([]models.UserBan, error) {
	var bans []models.UserBan
	err := r.readDB().WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bans, nil
}

func (r *banRepository) Revoke(ctx context.Context, id uint, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.UserBan{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Ban", id)
	}
	return nil
}
