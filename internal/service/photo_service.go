package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"courtmap/internal/middleware"
	"courtmap/internal/models"
	"courtmap/internal/observability"
	"courtmap/internal/repository"
	"courtmap/internal/storage"

	"github.com/google/uuid"
)

// PhotoService handles court photo uploads and removal.
type PhotoService struct {
	photoRepo     repository.PhotoRepository
	courtRepo     repository.CourtRepository
	store         storage.PhotoStorage
	bans          BanChecker
	isAdmin       func(ctx context.Context, userID uint) (bool, error)
	maxUploadSize int64
}

// NewPhotoService returns a new PhotoService. maxUploadSizeMB bounds accepted
// upload sizes.
func NewPhotoService(
	photoRepo repository.PhotoRepository,
	courtRepo repository.CourtRepository,
	store storage.PhotoStorage,
	bans BanChecker,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
	maxUploadSizeMB int,
) *PhotoService {
	return &PhotoService{
		photoRepo:     photoRepo,
		courtRepo:     courtRepo,
		store:         store,
		bans:          bans,
		isAdmin:       isAdmin,
		maxUploadSize: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// UploadPhotoInput is the input for uploading a court photo.
type UploadPhotoInput struct {
	CourtID     uint
	UserID      uint
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Caption     string
}

// UploadPhoto validates, stores and records a court photo.
func (s *PhotoService) UploadPhoto(ctx context.Context, in UploadPhotoInput) (*models.CourtPhoto, error) {
	banned, err := s.bans.IsBanned(ctx, in.UserID, models.BanCategoryPhotos)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, models.NewBannedError(models.BanCategoryPhotos)
	}

	if !storage.ValidatePhotoFileType(in.ContentType, in.Filename) {
		return nil, models.NewValidationError("Unsupported photo type (jpeg, png or webp required)")
	}
	if in.Size <= 0 {
		return nil, models.NewValidationError("Photo is empty")
	}
	if in.Size > s.maxUploadSize {
		return nil, models.NewValidationError(fmt.Sprintf("Photo exceeds the %dMB upload limit", s.maxUploadSize/(1024*1024)))
	}
	if len(in.Caption) > 255 {
		return nil, models.NewValidationError("Caption too long (max 255 characters)")
	}

	if _, err := s.courtRepo.GetByID(ctx, in.CourtID); err != nil {
		return nil, err
	}

	key := storage.PhotoKey(in.CourtID, uuid.NewString()+extensionFor(in.ContentType, in.Filename))
	contentType := in.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(in.Filename)
	}

	url, err := s.store.Upload(ctx, key, contentType, in.Body, in.Size)
	if err != nil {
		observability.PhotoUploads.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	photo := &models.CourtPhoto{
		CourtID:   in.CourtID,
		UserID:    in.UserID,
		ObjectKey: key,
		URL:       url,
		Caption:   in.Caption,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// The object is orphaned if the row insert fails; clean it up best-effort.
		if delErr := s.store.DeleteObject(ctx, key); delErr != nil {
			middleware.Logger.WarnContext(ctx, "failed to clean up orphaned photo object",
				slog.String("key", key),
				slog.String("error", delErr.Error()),
			)
		}
		observability.PhotoUploads.WithLabelValues("error").Inc()
		return nil, err
	}

	observability.PhotoUploads.WithLabelValues("ok").Inc()
	return photo, nil
}

func extensionFor(contentType, filename string) string {
	if ext, ok := storage.AllowedPhotoTypes[contentType]; ok {
		return ext
	}
	ct := storage.ContentTypeForFilename(filename)
	if ext, ok := storage.AllowedPhotoTypes[ct]; ok {
		return ext
	}
	return ".jpg"
}

// ListPhotos returns photos for a court, newest first.
func (s *PhotoService) ListPhotos(ctx context.Context, courtID uint, limit, offset int) ([]models.CourtPhoto, error) {
	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}
	return s.photoRepo.ListByCourt(ctx, courtID, limit, offset)
}

// DeletePhoto removes a photo record and best-effort deletes the stored
// object. The uploader may delete their own; admins may delete any. A storage
// deletion failure is logged and does not block the database removal.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID, callerID uint) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != callerID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own photos")
		}
		admin, err := s.isAdmin(ctx, callerID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own photos")
		}
	}

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}

	if err := s.store.DeleteObject(ctx, photo.ObjectKey); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to delete photo object from storage",
			slog.String("key", photo.ObjectKey),
			slog.Any("photo_id", photo.ID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
