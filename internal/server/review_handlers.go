// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"courtmap/internal/models"
	"courtmap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews returns a court's reviews (public)
func (s *Server) GetReviews(c *fiber.Ctx) error {
	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)

	reviews, err := s.reviewService.ListReviews(c.UserContext(), courtID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reviews)
}

// CreateReview posts a review for a court (protected)
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.reviewService.CreateReview(c.UserContext(), service.CreateReviewInput{
		CourtID: courtID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateReview edits the caller's own review (protected)
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.reviewService.UpdateReview(c.UserContext(), service.UpdateReviewInput{
		ReviewID: reviewID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeleteReview removes a review; allowed for the author or an admin (protected)
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.reviewService.DeleteReview(c.UserContext(), reviewID, userID); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{
		"message": "Review deleted",
	})
}
