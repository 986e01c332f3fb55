// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"courtmap/internal/models"
	"courtmap/internal/service"
	"courtmap/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GetPhotos returns a court's photos (public)
func (s *Server) GetPhotos(c *fiber.Ctx) error {
	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)

	photos, err := s.photoService.ListPhotos(c.UserContext(), courtID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(photos)
}

// UploadPhoto accepts a multipart photo upload for a court (protected)
// @Summary Upload court photo
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Court ID"
// @Param photo formData file true "Photo file (jpeg, png or webp)"
// @Param caption formData string false "Caption"
// @Success 201 {object} models.CourtPhoto
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /tennis-courts/{id}/photos [post]
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	courtID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A photo file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(fileHeader.Filename)
	}

	created, err := s.photoService.UploadPhoto(c.UserContext(), service.UploadPhotoInput{
		CourtID:     courtID,
		UserID:      userID,
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Body:        file,
		Caption:     c.FormValue("caption"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// DeletePhoto removes a photo; allowed for the uploader or an admin (protected)
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.photoService.DeletePhoto(c.UserContext(), photoID, userID); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{
		"message": "Photo deleted",
	})
}
