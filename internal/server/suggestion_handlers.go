// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"courtmap/internal/models"
	"courtmap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// suggestedFieldsRequest carries the optional proposed values of a
// suggestion. Absent fields mean "no change proposed".
type suggestedFieldsRequest struct {
	SuggestedName           *string `json:"suggestedName"`
	SuggestedAddress        *string `json:"suggestedAddress"`
	SuggestedCity           *string `json:"suggestedCity"`
	SuggestedState          *string `json:"suggestedState"`
	SuggestedZip            *string `json:"suggestedZip"`
	SuggestedCourtType      *string `json:"suggestedCourtType"`
	SuggestedNumberOfCourts *int    `json:"suggestedNumberOfCourts"`
	SuggestedSurface        *string `json:"suggestedSurface"`
	SuggestedCondition      *string `json:"suggestedCondition"`
	SuggestedHittingWall    *bool   `json:"suggestedHittingWall"`
	SuggestedLights         *bool   `json:"suggestedLights"`
	SuggestedIsPublic       *bool   `json:"suggestedIsPublic"`
}

func (r suggestedFieldsRequest) toInput() service.SuggestedFieldsInput {
	return service.SuggestedFieldsInput{
		Name:           r.SuggestedName,
		Address:        r.SuggestedAddress,
		City:           r.SuggestedCity,
		State:          r.SuggestedState,
		Zip:            r.SuggestedZip,
		CourtType:      r.SuggestedCourtType,
		NumberOfCourts: r.SuggestedNumberOfCourts,
		Surface:        r.SuggestedSurface,
		Condition:      r.SuggestedCondition,
		HittingWall:    r.SuggestedHittingWall,
		Lights:         r.SuggestedLights,
		IsPublic:       r.SuggestedIsPublic,
	}
}

// CreateSuggestion submits an edit suggestion for a court (protected)
// @Summary Submit edit suggestion
// @Description Propose changes to a court's fields; one pending suggestion per user per court
// @Tags suggestions
// @Accept json
// @Produce json
// @Param id path int true "Court ID"
// @Success 201 {object} models.EditSuggestion
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /tennis-courts/{id}/edit-suggestions [post]
func (s *Server) CreateSuggestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
		suggestedFieldsRequest
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.suggestionService.Submit(c.UserContext(), service.SubmitSuggestionInput{
		CourtID:     courtID,
		SubmitterID: userID,
		Reason:      req.Reason,
		Fields:      req.toInput(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetSuggestions lists a court's suggestions, optionally filtered by status (public)
// @Summary List edit suggestions
// @Tags suggestions
// @Produce json
// @Param id path int true "Court ID"
// @Param status query string false "Filter by status (pending|approved|rejected)"
// @Success 200 {array} models.EditSuggestion
// @Router /tennis-courts/{id}/edit-suggestions [get]
func (s *Server) GetSuggestions(c *fiber.Ctx) error {
	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	status := models.SuggestionStatus(c.Query("status"))

	suggestions, err := s.suggestionService.ListByCourt(c.UserContext(), courtID, status, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(suggestions)
}

// UpdateSuggestion lets the submitter edit a still-pending suggestion (protected)
func (s *Server) UpdateSuggestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	suggestionID, err := s.parseID(c, "suggestionId")
	if err != nil {
		return nil
	}

	var req struct {
		Reason *string `json:"reason"`
		suggestedFieldsRequest
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.suggestionService.Update(c.UserContext(), service.UpdateSuggestionInput{
		SuggestionID: suggestionID,
		CallerID:     userID,
		Reason:       req.Reason,
		Fields:       req.toInput(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// ReviewSuggestion applies a reviewer decision to a suggestion (protected).
// An empty field resolves the whole suggestion; a named field decides just
// that field.
// @Summary Review edit suggestion
// @Description Approve or reject a suggestion, optionally scoped to one field
// @Tags suggestions
// @Accept json
// @Produce json
// @Param id path int true "Court ID"
// @Param suggestionId path int true "Suggestion ID"
// @Param request body object{status=string,reviewNote=string,field=string} true "Decision"
// @Success 200 {object} service.ReviewResult
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /tennis-courts/{id}/edit-suggestions/{suggestionId} [put]
func (s *Server) ReviewSuggestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	suggestionID, err := s.parseID(c, "suggestionId")
	if err != nil {
		return nil
	}

	var req struct {
		Status     string `json:"status"`
		ReviewNote string `json:"reviewNote"`
		Field      string `json:"field"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.suggestionService.Review(c.UserContext(), service.ReviewSuggestionInput{
		SuggestionID: suggestionID,
		ReviewerID:   userID,
		Decision:     models.SuggestionStatus(req.Status),
		ReviewNote:   req.ReviewNote,
		Field:        req.Field,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// DeleteSuggestion lets the submitter withdraw a still-pending suggestion (protected)
func (s *Server) DeleteSuggestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	suggestionID, err := s.parseID(c, "suggestionId")
	if err != nil {
		return nil
	}

	if delErr := s.suggestionService.Delete(c.UserContext(), suggestionID, userID); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{
		"message": "Suggestion deleted",
	})
}
