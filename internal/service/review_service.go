package service

import (
	"context"

	"courtmap/internal/models"
	"courtmap/internal/repository"
)

// ReviewService implements court review business rules.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	courtRepo  repository.CourtRepository
	bans       BanChecker
	isAdmin    func(ctx context.Context, userID uint) (bool, error)
}

// NewReviewService returns a new ReviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	courtRepo repository.CourtRepository,
	bans BanChecker,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		courtRepo:  courtRepo,
		bans:       bans,
		isAdmin:    isAdmin,
	}
}

// CreateReviewInput is the input for posting a review.
type CreateReviewInput struct {
	CourtID uint
	UserID  uint
	Rating  int
	Comment string
}

// UpdateReviewInput is the input for editing one's own review.
type UpdateReviewInput struct {
	ReviewID uint
	UserID   uint
	Rating   int
	Comment  string
}

const maxReviewCommentLen = 2000

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return models.NewValidationError("Rating must be between 1 and 5")
	}
	return nil
}

// CreateReview posts a review for a court. One review per user per court.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	banned, err := s.bans.IsBanned(ctx, in.UserID, models.BanCategoryReviews)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, models.NewBannedError(models.BanCategoryReviews)
	}

	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if len(in.Comment) > maxReviewCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.courtRepo.GetByID(ctx, in.CourtID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByCourtAndUser(ctx, in.CourtID, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You have already reviewed this court. Edit your review instead.")
	}

	review := &models.Review{
		CourtID: in.CourtID,
		UserID:  in.UserID,
		Rating:  in.Rating,
		Comment: in.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// ListReviews returns reviews for a court, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, courtID uint, limit, offset int) ([]models.Review, error) {
	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByCourt(ctx, courtID, limit, offset)
}

// UpdateReview edits the caller's own review.
func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own reviews")
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if len(in.Comment) > maxReviewCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	review.Rating = in.Rating
	review.Comment = in.Comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// DeleteReview removes a review. The author may delete their own; admins may
// delete any.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, callerID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != callerID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own reviews")
		}
		admin, err := s.isAdmin(ctx, callerID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own reviews")
		}
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
