// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"courtmap/internal/models"
	"courtmap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// fileReport is the shared body of the per-target report endpoints.
func (s *Server) fileReport(c *fiber.Ctx, targetType models.ReportTargetType) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason  string `json:"reason"`
		Details string `json:"details"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.moderationService.FileReport(c.UserContext(), service.FileReportInput{
		ReporterID: userID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ReportReview files a report against a review (protected)
func (s *Server) ReportReview(c *fiber.Ctx) error {
	return s.fileReport(c, models.ReportTargetReview)
}

// ReportPhoto files a report against a court photo (protected)
func (s *Server) ReportPhoto(c *fiber.Ctx) error {
	return s.fileReport(c, models.ReportTargetPhoto)
}

// ReportSuggestion files a report against an edit suggestion (protected)
func (s *Server) ReportSuggestion(c *fiber.Ctx) error {
	return s.fileReport(c, models.ReportTargetSuggestion)
}
