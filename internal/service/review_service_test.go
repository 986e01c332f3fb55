package service

import (
	"context"
	"testing"

	"courtmap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	t.Parallel()

	t.Run("creates a review", func(t *testing.T) {
		t.Parallel()

		reviews := noopReviewRepo()
		var created *models.Review
		reviews.createFn = func(_ context.Context, review *models.Review) error {
			review.ID = 5
			created = review
			return nil
		}
		svc := NewReviewService(reviews, noopCourtRepo(), neverBanned(), adminChecker())

		got, err := svc.CreateReview(context.Background(), CreateReviewInput{
			CourtID: 7,
			UserID:  42,
			Rating:  4,
			Comment: "Well kept nets, gets busy after work",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 4, created.Rating)
		assert.Equal(t, uint(5), got.ID)
	})

	t.Run("one review per user per court", func(t *testing.T) {
		t.Parallel()

		reviews := noopReviewRepo()
		reviews.findByCourtAndUserFn = func(_ context.Context, courtID, userID uint) (*models.Review, error) {
			return &models.Review{ID: 5, CourtID: courtID, UserID: userID}, nil
		}
		svc := NewReviewService(reviews, noopCourtRepo(), neverBanned(), adminChecker())

		_, err := svc.CreateReview(context.Background(), CreateReviewInput{
			CourtID: 7,
			UserID:  42,
			Rating:  4,
		})

		assertConflictError(t, err)
	})

	t.Run("rating bounds", func(t *testing.T) {
		t.Parallel()

		svc := NewReviewService(noopReviewRepo(), noopCourtRepo(), neverBanned(), adminChecker())

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.CreateReview(context.Background(), CreateReviewInput{
				CourtID: 7,
				UserID:  42,
				Rating:  rating,
			})
			assertValidationError(t, err)
		}
	})

	t.Run("blocked by a reviews ban", func(t *testing.T) {
		t.Parallel()

		bans := &banCheckerStub{
			isBannedFn: func(_ context.Context, _ uint, category models.BanCategory) (bool, error) {
				return category == models.BanCategoryReviews, nil
			},
		}
		svc := NewReviewService(noopReviewRepo(), noopCourtRepo(), bans, adminChecker())

		_, err := svc.CreateReview(context.Background(), CreateReviewInput{
			CourtID: 7,
			UserID:  42,
			Rating:  4,
		})

		assertBannedError(t, err)
	})

	t.Run("missing court propagates not found", func(t *testing.T) {
		t.Parallel()

		courts := noopCourtRepo()
		courts.getByIDFn = func(_ context.Context, id uint) (*models.Court, error) {
			return nil, models.NewNotFoundError("Court", id)
		}
		svc := NewReviewService(noopReviewRepo(), courts, neverBanned(), adminChecker())

		_, err := svc.CreateReview(context.Background(), CreateReviewInput{
			CourtID: 999,
			UserID:  42,
			Rating:  4,
		})

		assertNotFoundError(t, err)
	})
}

func TestUpdateReview(t *testing.T) {
	t.Parallel()

	ownedBy := func(userID uint) *reviewRepoStub {
		reviews := noopReviewRepo()
		reviews.getByIDFn = func(_ context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, CourtID: 7, UserID: userID, Rating: 3}, nil
		}
		return reviews
	}

	t.Run("author can edit", func(t *testing.T) {
		t.Parallel()

		reviews := ownedBy(42)
		var updated *models.Review
		reviews.updateFn = func(_ context.Context, review *models.Review) error {
			updated = review
			return nil
		}
		svc := NewReviewService(reviews, noopCourtRepo(), neverBanned(), adminChecker())

		_, err := svc.UpdateReview(context.Background(), UpdateReviewInput{
			ReviewID: 5,
			UserID:   42,
			Rating:   5,
			Comment:  "resurfaced, much better now",
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 5, updated.Rating)
	})

	t.Run("another user cannot edit", func(t *testing.T) {
		t.Parallel()

		svc := NewReviewService(ownedBy(42), noopCourtRepo(), neverBanned(), adminChecker())

		_, err := svc.UpdateReview(context.Background(), UpdateReviewInput{
			ReviewID: 5,
			UserID:   99,
			Rating:   1,
		})

		assertForbiddenError(t, err)
	})
}

func TestDeleteReview(t *testing.T) {
	t.Parallel()

	ownedBy := func(userID uint) *reviewRepoStub {
		reviews := noopReviewRepo()
		reviews.getByIDFn = func(_ context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, UserID: userID}, nil
		}
		return reviews
	}

	t.Run("author deletes own review", func(t *testing.T) {
		t.Parallel()

		reviews := ownedBy(42)
		deleted := false
		reviews.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewReviewService(reviews, noopCourtRepo(), neverBanned(), adminChecker())

		require.NoError(t, svc.DeleteReview(context.Background(), 5, 42))
		assert.True(t, deleted)
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		t.Parallel()

		reviews := ownedBy(42)
		deleted := false
		reviews.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewReviewService(reviews, noopCourtRepo(), neverBanned(), adminChecker(9))

		require.NoError(t, svc.DeleteReview(context.Background(), 5, 9))
		assert.True(t, deleted)
	})

	t.Run("non-author non-admin is forbidden", func(t *testing.T) {
		t.Parallel()

		svc := NewReviewService(ownedBy(42), noopCourtRepo(), neverBanned(), adminChecker())

		assertForbiddenError(t, svc.DeleteReview(context.Background(), 5, 99))
	})
}
