package repository

import (
	"context"
	"errors"
	"time"

	"courtmap/internal/database"
	"courtmap/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines persistence operations for content reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	List(ctx context.Context, status models.ReportStatus, targetType models.ReportTargetType, limit, offset int) ([]models.Report, error)
	Save(ctx context.Context, report *models.Report) error
	// ResolveAllForTarget closes every open report aimed at one piece of
	// content, recording who resolved them and why.
	ResolveAllForTarget(ctx context.Context, targetType models.ReportTargetType, targetID uint, status models.ReportStatus, resolvedBy uint, note string) (int64, error)
	CountOpenForUser(ctx context.Context, userID uint) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a new ReportRepository implementation.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) readDB() *gorm.DB {
	if rdb := database.GetReadDB(); rdb != nil {
		return rdb
	}
	return r.db
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.readDB().WithContext(ctx).First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status models.ReportStatus, targetType models.ReportTargetType, limit, offset int) ([]models.Report, error) {
	var reports []models.Report
	q := r.readDB().WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) Save(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reportRepository) ResolveAllForTarget(ctx context.Context, targetType models.ReportTargetType, targetID uint, status models.ReportStatus, resolvedBy uint, note string) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("target_type = ? AND target_id = ? AND status = ?", targetType, targetID, models.ReportStatusOpen).
		Updates(map[string]interface{}{
			"status":              status,
			"resolved_by_user_id": resolvedBy,
			"resolution_note":     note,
			"resolved_at":         now,
		})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *reportRepository) CountOpenForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.readDB().WithContext(ctx).Model(&models.Report{}).
		Where("reported_user_id = ? AND status = ?", userID, models.ReportStatusOpen).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
