// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"courtmap/internal/models"
	"courtmap/internal/repository"
	"courtmap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCourts returns courts, optionally filtered (public)
// @Summary List courts
// @Description List tennis courts, optionally filtered by city, state, surface or court type
// @Tags courts
// @Produce json
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param surface query string false "Filter by surface"
// @Param court_type query string false "Filter by court type"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Court
// @Router /tennis-courts [get]
func (s *Server) GetCourts(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	filter := repository.CourtListFilter{
		City:      c.Query("city"),
		State:     c.Query("state"),
		Surface:   c.Query("surface"),
		CourtType: c.Query("court_type"),
	}

	courts, err := s.courtService.ListCourts(c.UserContext(), filter, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(courts)
}

// GetCourt returns one court by ID (public)
func (s *Server) GetCourt(c *fiber.Ctx) error {
	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	court, err := s.courtService.GetCourt(c.UserContext(), courtID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(court)
}

type courtRequest struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Zip            string   `json:"zip"`
	CourtType      string   `json:"court_type"`
	NumberOfCourts *int     `json:"number_of_courts"`
	Surface        string   `json:"surface"`
	Condition      string   `json:"condition"`
	HittingWall    bool     `json:"hitting_wall"`
	Lights         bool     `json:"lights"`
	IsPublic       bool     `json:"is_public"`
	Parking        bool     `json:"parking"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// CreateCourt creates a court directly (admin only)
// @Summary Create court
// @Description Create a canonical court record directly, bypassing the suggestion workflow
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} models.Court
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/tennis-courts [post]
func (s *Server) CreateCourt(c *fiber.Ctx) error {
	var req courtRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateCourtInput{
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		CourtType:      req.CourtType,
		NumberOfCourts: req.NumberOfCourts,
		Surface:        req.Surface,
		Condition:      req.Condition,
		HittingWall:    req.HittingWall,
		Lights:         req.Lights,
		IsPublic:       req.IsPublic,
		Parking:        req.Parking,
	}
	if req.Latitude != nil {
		in.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		in.Longitude = *req.Longitude
	}

	court, err := s.courtService.CreateCourt(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(court)
}

// UpdateCourt applies an admin direct edit to a court (admin only).
// Only the fields present in the body are changed.
func (s *Server) UpdateCourt(c *fiber.Ctx) error {
	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req map[string]interface{}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	court, upErr := s.courtService.UpdateCourt(c.UserContext(), courtID, req)
	if upErr != nil {
		return respondServiceError(c, upErr)
	}

	return c.JSON(court)
}

// DeleteCourt removes a court and its dependent content (admin only)
func (s *Server) DeleteCourt(c *fiber.Ctx) error {
	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.courtService.DeleteCourt(c.UserContext(), courtID); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{
		"message": "Court deleted",
	})
}
