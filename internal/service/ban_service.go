package service

import (
	"context"
	"time"

	"courtmap/internal/models"
	"courtmap/internal/observability"
	"courtmap/internal/repository"
)

// BanService records and consults content-submission bans.
type BanService struct {
	banRepo  repository.BanRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewBanService returns a new BanService.
func NewBanService(banRepo repository.BanRepository, userRepo repository.UserRepository) *BanService {
	return &BanService{
		banRepo:  banRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateBanInput is the input for issuing a ban.
type CreateBanInput struct {
	UserID    uint
	Category  models.BanCategory
	Reason    string
	CreatedBy uint
	ExpiresAt *time.Time
}

// IsBanned reports whether the user has an active ban covering the category.
// A full ban covers every category; expired and revoked bans never block.
func (s *BanService) IsBanned(ctx context.Context, userID uint, category models.BanCategory) (bool, error) {
	bans, err := s.banRepo.ListActiveByUser(ctx, userID, s.now())
	if err != nil {
		return false, err
	}
	for i := range bans {
		if bans[i].Blocks(category) {
			return true, nil
		}
	}
	return false, nil
}

// CreateBan issues a new ban against a user.
func (s *BanService) CreateBan(ctx context.Context, in CreateBanInput) (*models.UserBan, error) {
	if !models.ValidBanCategory(in.Category) {
		return nil, models.NewValidationError("Invalid ban category")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		return nil, models.NewValidationError("Expiry must be in the future")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	ban := &models.UserBan{
		UserID:          in.UserID,
		Category:        in.Category,
		Reason:          in.Reason,
		CreatedByUserID: in.CreatedBy,
		ExpiresAt:       in.ExpiresAt,
	}
	if err := s.banRepo.Create(ctx, ban); err != nil {
		return nil, err
	}
	observability.BansIssued.WithLabelValues(string(in.Category)).Inc()
	return ban, nil
}

// RevokeBan lifts a ban immediately.
func (s *BanService) RevokeBan(ctx context.Context, banID uint) error {
	return s.banRepo.Revoke(ctx, banID, s.now())
}

// ListBans returns bans for the admin dashboard, newest first.
func (s *BanService) ListBans(ctx context.Context, limit, offset int) ([]models.UserBan, error) {
	return s.banRepo.List(ctx, limit, offset)
}

// ListUserBans returns one user's ban history.
func (s *BanService) ListUserBans(ctx context.Context, userID uint) ([]models.UserBan, error) {
	return s.banRepo.ListByUser(ctx, userID)
}
