package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"courtmap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewHandler(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	user := createTestUser(t, db, "reviewer", false)
	court := createTestCourt(t, db)

	app := fiber.New()
	app.Post("/tennis-courts/:id/reviews", asUser(user.ID, s.CreateReview))

	t.Run("creates a review", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, fmt.Sprintf("/tennis-courts/%d/reviews", court.ID), fiber.Map{
			"rating":  4,
			"comment": "Nets are new, lights come on at dusk.",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.Review
		decodeBody(t, resp, &created)
		assert.Equal(t, 4, created.Rating)
		assert.Equal(t, user.ID, created.UserID)
	})

	t.Run("second review for the same court conflicts", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, fmt.Sprintf("/tennis-courts/%d/reviews", court.ID), fiber.Map{
			"rating":  5,
			"comment": "changed my mind",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("rating out of range is rejected", func(t *testing.T) {
		other := createTestUser(t, db, "other_reviewer", false)
		otherApp := fiber.New()
		otherApp.Post("/tennis-courts/:id/reviews", asUser(other.ID, s.CreateReview))

		req := jsonRequest(http.MethodPost, fmt.Sprintf("/tennis-courts/%d/reviews", court.ID), fiber.Map{
			"rating": 6,
		})
		resp, err := otherApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("review ban blocks posting", func(t *testing.T) {
		banned := createTestUser(t, db, "banned_reviewer", false)
		require.NoError(t, db.Create(&models.UserBan{
			UserID:          banned.ID,
			Category:        models.BanCategoryReviews,
			Reason:          "abusive reviews",
			CreatedByUserID: user.ID,
		}).Error)

		bannedApp := fiber.New()
		bannedApp.Post("/tennis-courts/:id/reviews", asUser(banned.ID, s.CreateReview))

		req := jsonRequest(http.MethodPost, fmt.Sprintf("/tennis-courts/%d/reviews", court.ID), fiber.Map{
			"rating": 3,
		})
		resp, err := bannedApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetReviewsHandler(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	court := createTestCourt(t, db)

	for i := 0; i < 2; i++ {
		author := createTestUser(t, db, fmt.Sprintf("author%d", i), false)
		require.NoError(t, db.Create(&models.Review{
			CourtID: court.ID,
			UserID:  author.ID,
			Rating:  i + 3,
			Comment: "fine",
		}).Error)
	}

	app := fiber.New()
	app.Get("/tennis-courts/:id/reviews", s.GetReviews)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/tennis-courts/%d/reviews", court.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reviews []models.Review
	decodeBody(t, resp, &reviews)
	assert.Len(t, reviews, 2)
}

func TestUpdateAndDeleteReviewHandlers(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	author := createTestUser(t, db, "author", false)
	stranger := createTestUser(t, db, "stranger", false)
	admin := createTestUser(t, db, "admin", true)
	court := createTestCourt(t, db)

	review := &models.Review{CourtID: court.ID, UserID: author.ID, Rating: 2, Comment: "cracked surface"}
	require.NoError(t, db.Create(review).Error)

	t.Run("author edits their review", func(t *testing.T) {
		app := fiber.New()
		app.Put("/reviews/:id", asUser(author.ID, s.UpdateReview))

		req := jsonRequest(http.MethodPut, fmt.Sprintf("/reviews/%d", review.ID), fiber.Map{
			"rating":  4,
			"comment": "resurfaced this spring",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var stored models.Review
		require.NoError(t, db.First(&stored, review.ID).Error)
		assert.Equal(t, 4, stored.Rating)
		assert.Equal(t, "resurfaced this spring", stored.Comment)
	})

	t.Run("stranger cannot edit or delete", func(t *testing.T) {
		app := fiber.New()
		app.Put("/reviews/:id", asUser(stranger.ID, s.UpdateReview))
		app.Delete("/reviews/:id", asUser(stranger.ID, s.DeleteReview))

		req := jsonRequest(http.MethodPut, fmt.Sprintf("/reviews/%d", review.ID), fiber.Map{"rating": 1})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ID), nil)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		app := fiber.New()
		app.Delete("/reviews/:id", asUser(admin.ID, s.DeleteReview))

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
