package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtmap/internal/models"
	"courtmap/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateSuggestionHandler(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	submitter := createTestUser(t, db, "submitter", false)
	court := createTestCourt(t, db)

	app := fiber.New()
	app.Post("/tennis-courts/:id/edit-suggestions", asUser(submitter.ID, s.CreateSuggestion))

	url := fmt.Sprintf("/tennis-courts/%d/edit-suggestions", court.ID)

	t.Run("creates a pending suggestion", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, url, fiber.Map{
			"reason":           "Surface was redone in clay",
			"suggestedSurface": "Clay",
			"suggestedLights":  true,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.EditSuggestion
		decodeBody(t, resp, &created)
		assert.Equal(t, models.SuggestionStatusPending, created.Status)
		assert.Equal(t, "submitter", created.SubmittedByUserName)
		require.NotNil(t, created.SuggestedSurface)
		assert.Equal(t, "Clay", *created.SuggestedSurface)
	})

	t.Run("duplicate pending suggestion conflicts", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, url, fiber.Map{
			"reason":           "second thoughts",
			"suggestedSurface": "Grass",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("missing reason is rejected", func(t *testing.T) {
		other := createTestUser(t, db, "other", false)
		app2 := fiber.New()
		app2.Post("/tennis-courts/:id/edit-suggestions", asUser(other.ID, s.CreateSuggestion))

		req := jsonRequest(http.MethodPost, url, fiber.Map{
			"suggestedSurface": "Clay",
		})
		resp, err := app2.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown court is 404", func(t *testing.T) {
		fresh := createTestUser(t, db, "fresh", false)
		app2 := fiber.New()
		app2.Post("/tennis-courts/:id/edit-suggestions", asUser(fresh.ID, s.CreateSuggestion))

		req := jsonRequest(http.MethodPost, "/tennis-courts/9999/edit-suggestions", fiber.Map{
			"reason":           "surface wrong",
			"suggestedSurface": "Clay",
		})
		resp, err := app2.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("banned submitter gets 403", func(t *testing.T) {
		banned := createTestUser(t, db, "trouble", false)
		require.NoError(t, db.Create(&models.UserBan{
			UserID:          banned.ID,
			Category:        models.BanCategorySuggestions,
			Reason:          "spam",
			CreatedByUserID: 1,
		}).Error)

		app2 := fiber.New()
		app2.Post("/tennis-courts/:id/edit-suggestions", asUser(banned.ID, s.CreateSuggestion))

		req := jsonRequest(http.MethodPost, url, fiber.Map{
			"reason":           "surface wrong",
			"suggestedSurface": "Clay",
		})
		resp, err := app2.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestReviewSuggestionHandler_Whole(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	submitter := createTestUser(t, db, "submitter", false)
	reviewer := createTestUser(t, db, "reviewer", true)
	court := createTestCourt(t, db)

	surface := "Clay"
	lights := true
	suggestion := &models.EditSuggestion{
		CourtID:             court.ID,
		SubmittedByUserID:   submitter.ID,
		SubmittedByUserName: submitter.Username,
		Reason:              "resurfaced last month",
		Status:              models.SuggestionStatusPending,
		SuggestedSurface:    &surface,
		SuggestedLights:     &lights,
	}
	require.NoError(t, db.Create(suggestion).Error)

	app := fiber.New()
	app.Put("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(reviewer.ID, s.ReviewSuggestion))

	url := fmt.Sprintf("/tennis-courts/%d/edit-suggestions/%d", court.ID, suggestion.ID)

	t.Run("approval merges fields into the court", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, url, fiber.Map{
			"status":     "approved",
			"reviewNote": "verified on site",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ReviewResult
		decodeBody(t, resp, &result)
		assert.Equal(t, models.SuggestionStatusApproved, result.Suggestion.Status)
		assert.Equal(t, "reviewer", result.Suggestion.ReviewedByUserName)
		assert.Equal(t, "Clay", result.Court.Surface)
		assert.True(t, result.Court.Lights)

		// Untouched columns keep their values.
		assert.Equal(t, "good", result.Court.Condition)

		var stored models.Court
		require.NoError(t, db.First(&stored, court.ID).Error)
		assert.Equal(t, "Clay", stored.Surface)
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, url, fiber.Map{"status": "rejected"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("self-review is forbidden", func(t *testing.T) {
		surface2 := "Grass"
		second := &models.EditSuggestion{
			CourtID:             court.ID,
			SubmittedByUserID:   submitter.ID,
			SubmittedByUserName: submitter.Username,
			Reason:              "looks like grass now",
			Status:              models.SuggestionStatusPending,
			SuggestedSurface:    &surface2,
		}
		require.NoError(t, db.Create(second).Error)

		app2 := fiber.New()
		app2.Put("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(submitter.ID, s.ReviewSuggestion))

		req := jsonRequest(http.MethodPut,
			fmt.Sprintf("/tennis-courts/%d/edit-suggestions/%d", court.ID, second.ID),
			fiber.Map{"status": "approved"})
		resp, err := app2.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, url, fiber.Map{"status": "maybe"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReviewSuggestionHandler_Field(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	submitter := createTestUser(t, db, "submitter", false)
	reviewer := createTestUser(t, db, "reviewer", true)
	court := createTestCourt(t, db)

	surface := "Clay"
	condition := "poor"
	suggestion := &models.EditSuggestion{
		CourtID:             court.ID,
		SubmittedByUserID:   submitter.ID,
		SubmittedByUserName: submitter.Username,
		Reason:              "two corrections",
		Status:              models.SuggestionStatusPending,
		SuggestedSurface:    &surface,
		SuggestedCondition:  &condition,
	}
	require.NoError(t, db.Create(suggestion).Error)

	app := fiber.New()
	app.Put("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(reviewer.ID, s.ReviewSuggestion))

	url := fmt.Sprintf("/tennis-courts/%d/edit-suggestions/%d", court.ID, suggestion.ID)

	t.Run("approving one field keeps the suggestion pending", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, url, fiber.Map{
			"status": "approved",
			"field":  "surface",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ReviewResult
		decodeBody(t, resp, &result)
		assert.Equal(t, models.SuggestionStatusPending, result.Suggestion.Status)
		assert.Equal(t, "Clay", result.Court.Surface)
		assert.Equal(t, "good", result.Court.Condition)
	})

	t.Run("re-deciding the same field conflicts", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, url, fiber.Map{
			"status": "rejected",
			"field":  "surface",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("deciding the last field settles the suggestion", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, url, fiber.Map{
			"status":     "rejected",
			"field":      "condition",
			"reviewNote": "condition looked fine",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ReviewResult
		decodeBody(t, resp, &result)
		// One approved field among the decisions: the suggestion is approved.
		assert.Equal(t, models.SuggestionStatusApproved, result.Suggestion.Status)
		assert.Equal(t, "good", result.Court.Condition)
	})

	t.Run("field not proposed is rejected", func(t *testing.T) {
		other := createTestUser(t, db, "other", false)
		zip := "97202"
		second := &models.EditSuggestion{
			CourtID:             court.ID,
			SubmittedByUserID:   other.ID,
			SubmittedByUserName: other.Username,
			Reason:              "zip wrong",
			Status:              models.SuggestionStatusPending,
			SuggestedZip:        &zip,
		}
		require.NoError(t, db.Create(second).Error)

		req := jsonRequest(http.MethodPut,
			fmt.Sprintf("/tennis-courts/%d/edit-suggestions/%d", court.ID, second.ID),
			fiber.Map{"status": "approved", "field": "lights"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateAndDeleteSuggestionHandlers(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	submitter := createTestUser(t, db, "submitter", false)
	stranger := createTestUser(t, db, "stranger", false)
	court := createTestCourt(t, db)

	surface := "Clay"
	suggestion := &models.EditSuggestion{
		CourtID:             court.ID,
		SubmittedByUserID:   submitter.ID,
		SubmittedByUserName: submitter.Username,
		Reason:              "first pass",
		Status:              models.SuggestionStatusPending,
		SuggestedSurface:    &surface,
	}
	require.NoError(t, db.Create(suggestion).Error)

	url := fmt.Sprintf("/tennis-courts/%d/edit-suggestions/%d", court.ID, suggestion.ID)

	t.Run("submitter edits reason and fields", func(t *testing.T) {
		app := fiber.New()
		app.Patch("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(submitter.ID, s.UpdateSuggestion))

		req := jsonRequest(http.MethodPatch, url, fiber.Map{
			"reason":                  "counted them on Saturday",
			"suggestedNumberOfCourts": 6,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.EditSuggestion
		decodeBody(t, resp, &updated)
		assert.Equal(t, "counted them on Saturday", updated.Reason)
		require.NotNil(t, updated.SuggestedNumberOfCourts)
		assert.Equal(t, 6, *updated.SuggestedNumberOfCourts)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		app := fiber.New()
		app.Patch("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(stranger.ID, s.UpdateSuggestion))

		req := jsonRequest(http.MethodPatch, url, fiber.Map{"reason": "hijack"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		app := fiber.New()
		app.Delete("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(stranger.ID, s.DeleteSuggestion))

		req := httptest.NewRequest(http.MethodDelete, url, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("submitter withdraws the suggestion", func(t *testing.T) {
		app := fiber.New()
		app.Delete("/tennis-courts/:id/edit-suggestions/:suggestionId", asUser(submitter.ID, s.DeleteSuggestion))

		req := httptest.NewRequest(http.MethodDelete, url, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.EditSuggestion{}).Where("id = ?", suggestion.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestGetSuggestionsHandler(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	submitter := createTestUser(t, db, "submitter", false)
	court := createTestCourt(t, db)

	surface := "Clay"
	now := time.Now()
	for i, status := range []models.SuggestionStatus{
		models.SuggestionStatusPending,
		models.SuggestionStatusApproved,
	} {
		require.NoError(t, db.Create(&models.EditSuggestion{
			CourtID:             court.ID,
			SubmittedByUserID:   submitter.ID,
			SubmittedByUserName: submitter.Username,
			Reason:              "entry",
			Status:              status,
			SuggestedSurface:    &surface,
			CreatedAt:           now.Add(time.Duration(i) * time.Second),
		}).Error)
	}

	app := fiber.New()
	app.Get("/tennis-courts/:id/edit-suggestions", s.GetSuggestions)

	t.Run("lists all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/tennis-courts/%d/edit-suggestions", court.ID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out []models.EditSuggestion
		decodeBody(t, resp, &out)
		assert.Len(t, out, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/tennis-courts/%d/edit-suggestions?status=pending", court.ID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var out []models.EditSuggestion
		decodeBody(t, resp, &out)
		require.Len(t, out, 1)
		assert.Equal(t, models.SuggestionStatusPending, out[0].Status)
	})

	t.Run("invalid status filter is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/tennis-courts/%d/edit-suggestions?status=stale", court.ID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
