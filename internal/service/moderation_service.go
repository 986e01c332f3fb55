package service

import (
	"context"
	"log/slog"
	"time"

	"courtmap/internal/middleware"
	"courtmap/internal/models"
	"courtmap/internal/observability"
	"courtmap/internal/repository"
	"courtmap/internal/storage"
)

// ModerationService handles content reports and the admin actions that
// resolve them.
type ModerationService struct {
	reportRepo     repository.ReportRepository
	reviewRepo     repository.ReviewRepository
	photoRepo      repository.PhotoRepository
	suggestionRepo repository.SuggestionRepository
	store          storage.PhotoStorage
	nowFn          func() time.Time
}

// NewModerationService returns a new ModerationService.
func NewModerationService(
	reportRepo repository.ReportRepository,
	reviewRepo repository.ReviewRepository,
	photoRepo repository.PhotoRepository,
	suggestionRepo repository.SuggestionRepository,
	store storage.PhotoStorage,
) *ModerationService {
	return &ModerationService{
		reportRepo:     reportRepo,
		reviewRepo:     reviewRepo,
		photoRepo:      photoRepo,
		suggestionRepo: suggestionRepo,
		store:          store,
		nowFn:          time.Now,
	}
}

// FileReportInput is the input for reporting a piece of content.
type FileReportInput struct {
	ReporterID uint
	TargetType models.ReportTargetType
	TargetID   uint
	Reason     string
	Details    string
}

const maxReportReasonLen = 255

// targetOwner resolves the user who submitted the reported content, verifying
// the target exists along the way.
func (s *ModerationService) targetOwner(ctx context.Context, targetType models.ReportTargetType, targetID uint) (uint, error) {
	switch targetType {
	case models.ReportTargetReview:
		review, err := s.reviewRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return review.UserID, nil
	case models.ReportTargetPhoto:
		photo, err := s.photoRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return photo.UserID, nil
	case models.ReportTargetSuggestion:
		suggestion, err := s.suggestionRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return suggestion.SubmittedByUserID, nil
	}
	return 0, models.NewValidationError("Invalid report target type")
}

// FileReport records a complaint about a review, photo or suggestion.
func (s *ModerationService) FileReport(ctx context.Context, in FileReportInput) (*models.Report, error) {
	if !models.ValidReportTarget(in.TargetType) {
		return nil, models.NewValidationError("Invalid report target type")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > maxReportReasonLen {
		return nil, models.NewValidationError("Reason too long (max 255 characters)")
	}

	ownerID, err := s.targetOwner(ctx, in.TargetType, in.TargetID)
	if err != nil {
		return nil, err
	}
	if ownerID == in.ReporterID {
		return nil, models.NewValidationError("You cannot report your own content")
	}

	report := &models.Report{
		ReporterID:     in.ReporterID,
		TargetType:     in.TargetType,
		TargetID:       in.TargetID,
		ReportedUserID: &ownerID,
		Reason:         in.Reason,
		Details:        in.Details,
		Status:         models.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	observability.ReportsFiled.WithLabelValues(string(in.TargetType)).Inc()
	return report, nil
}

// ListReports returns reports for the admin dashboard, oldest first.
// CountOpenReportsFor returns how many unresolved reports point at content
// submitted by the user. The ban dashboard shows it next to the ban history.
func (s *ModerationService) CountOpenReportsFor(ctx context.Context, userID uint) (int64, error) {
	return s.reportRepo.CountOpenForUser(ctx, userID)
}

func (s *ModerationService) ListReports(ctx context.Context, status models.ReportStatus, targetType models.ReportTargetType, limit, offset int) ([]models.Report, error) {
	if status != "" {
		switch status {
		case models.ReportStatusOpen, models.ReportStatusResolved, models.ReportStatusDismissed:
		default:
			return nil, models.NewValidationError("Invalid status filter")
		}
	}
	if targetType != "" && !models.ValidReportTarget(targetType) {
		return nil, models.NewValidationError("Invalid target type filter")
	}
	return s.reportRepo.List(ctx, status, targetType, limit, offset)
}

// DismissReport closes one report without touching the reported content.
func (s *ModerationService) DismissReport(ctx context.Context, reportID, adminID uint, note string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportStatusOpen {
		return nil, models.NewConflictError("Report has already been resolved")
	}

	now := s.nowFn()
	report.Status = models.ReportStatusDismissed
	report.ResolvedByUserID = &adminID
	report.ResolutionNote = note
	report.ResolvedAt = &now
	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}
	observability.ReportsResolved.WithLabelValues("dismissed").Inc()
	return report, nil
}

// DeleteReportedContent removes the content a report points at and resolves
// every open report aimed at it. For photos the stored object is deleted
// best-effort; a storage failure is logged and the database removal stands.
func (s *ModerationService) DeleteReportedContent(ctx context.Context, reportID, adminID uint, note string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportStatusOpen {
		return nil, models.NewConflictError("Report has already been resolved")
	}

	switch report.TargetType {
	case models.ReportTargetReview:
		if err := s.reviewRepo.Delete(ctx, report.TargetID); err != nil {
			return nil, err
		}
	case models.ReportTargetPhoto:
		photo, err := s.photoRepo.GetByID(ctx, report.TargetID)
		if err != nil {
			return nil, err
		}
		if err := s.photoRepo.Delete(ctx, report.TargetID); err != nil {
			return nil, err
		}
		if s.store != nil {
			if err := s.store.DeleteObject(ctx, photo.ObjectKey); err != nil {
				middleware.Logger.WarnContext(ctx, "failed to delete reported photo object",
					slog.String("key", photo.ObjectKey),
					slog.String("error", err.Error()),
				)
			}
		}
	case models.ReportTargetSuggestion:
		if err := s.suggestionRepo.Delete(ctx, report.TargetID); err != nil {
			return nil, err
		}
	}

	if _, err := s.reportRepo.ResolveAllForTarget(ctx, report.TargetType, report.TargetID, models.ReportStatusResolved, adminID, note); err != nil {
		return nil, err
	}
	observability.ReportsResolved.WithLabelValues("content_removed").Inc()
	return s.reportRepo.GetByID(ctx, reportID)
}

// ClearAllReports dismisses every open report, optionally scoped to one
// target type. Irreversible.
func (s *ModerationService) ClearAllReports(ctx context.Context, adminID uint, targetType models.ReportTargetType, note string) (int64, error) {
	if targetType != "" && !models.ValidReportTarget(targetType) {
		return 0, models.NewValidationError("Invalid target type filter")
	}

	var cleared int64
	const pageSize = 200
	for {
		open, err := s.reportRepo.List(ctx, models.ReportStatusOpen, targetType, pageSize, 0)
		if err != nil {
			return cleared, err
		}
		if len(open) == 0 {
			return cleared, nil
		}
		for i := range open {
			n, err := s.reportRepo.ResolveAllForTarget(ctx, open[i].TargetType, open[i].TargetID, models.ReportStatusDismissed, adminID, note)
			if err != nil {
				return cleared, err
			}
			cleared += n
			if n > 0 {
				observability.ReportsResolved.WithLabelValues("dismissed").Inc()
			}
		}
	}
}
