// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"time"

	"courtmap/internal/models"
	"courtmap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReports lists reports for the moderation dashboard (admin only)
// @Summary List reports
// @Description List content reports, filtered by status and target type
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status (open|resolved|dismissed)"
// @Param target_type query string false "Filter by target type (review|photo|suggestion)"
// @Success 200 {array} models.Report
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/reports [get]
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	status := models.ReportStatus(c.Query("status"))
	targetType := models.ReportTargetType(c.Query("target_type"))

	reports, err := s.moderationService.ListReports(c.UserContext(), status, targetType, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reports)
}

// DismissReport closes a single report without touching the reported content (admin only)
// @Summary Dismiss report
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body object{note=string} false "Resolution note"
// @Success 200 {object} models.Report
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/reports/{id}/dismiss [post]
func (s *Server) DismissReport(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Note string `json:"note"`
	}
	// Body is optional; ignore parse failures on an empty body.
	_ = c.BodyParser(&req)

	report, dErr := s.moderationService.DismissReport(c.UserContext(), reportID, adminID, req.Note)
	if dErr != nil {
		return respondServiceError(c, dErr)
	}

	return c.JSON(report)
}

// DeleteReportedContent removes the reported content and resolves every open
// report against it (admin only)
// @Summary Delete reported content
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body object{note=string} false "Resolution note"
// @Success 200 {object} models.Report
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/reports/{id}/delete-content [post]
func (s *Server) DeleteReportedContent(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&req)

	report, dErr := s.moderationService.DeleteReportedContent(c.UserContext(), reportID, adminID, req.Note)
	if dErr != nil {
		return respondServiceError(c, dErr)
	}

	return c.JSON(report)
}

// ClearReports bulk-dismisses open reports, optionally scoped to one target
// type (admin only, irreversible)
func (s *Server) ClearReports(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req struct {
		TargetType string `json:"target_type"`
		Note       string `json:"note"`
	}
	_ = c.BodyParser(&req)

	cleared, err := s.moderationService.ClearAllReports(c.UserContext(), adminID,
		models.ReportTargetType(req.TargetType), req.Note)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"cleared": cleared,
	})
}

// GetPendingSuggestions lists all pending suggestions across courts for the
// moderation dashboard (admin only)
func (s *Server) GetPendingSuggestions(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	suggestions, err := s.suggestionService.ListPending(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(suggestions)
}

// GetBans lists all bans (admin only)
func (s *Server) GetBans(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	bans, err := s.banService.ListBans(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(bans)
}

// GetUserBans lists one user's bans, active and historical, together with
// their open report count (admin only)
func (s *Server) GetUserBans(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	bans, lErr := s.banService.ListUserBans(c.UserContext(), userID)
	if lErr != nil {
		return respondServiceError(c, lErr)
	}

	openReports, cErr := s.moderationService.CountOpenReportsFor(c.UserContext(), userID)
	if cErr != nil {
		return respondServiceError(c, cErr)
	}

	return c.JSON(fiber.Map{
		"bans":         bans,
		"open_reports": openReports,
	})
}

// CreateBan issues a submission ban against a user (admin only)
// @Summary Create ban
// @Description Ban a user from a submission category; "full" blocks everything
// @Tags admin
// @Accept json
// @Produce json
// @Param request body object{user_id=int,category=string,reason=string,expires_at=string} true "Ban"
// @Success 201 {object} models.UserBan
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/user-bans [post]
func (s *Server) CreateBan(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req struct {
		UserID    uint       `json:"user_id"`
		Category  string     `json:"category"`
		Reason    string     `json:"reason"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ban, err := s.banService.CreateBan(c.UserContext(), service.CreateBanInput{
		UserID:    req.UserID,
		Category:  models.BanCategory(req.Category),
		Reason:    req.Reason,
		CreatedBy: adminID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ban)
}

// RevokeBan lifts a ban early (admin only)
func (s *Server) RevokeBan(c *fiber.Ctx) error {
	banID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if rErr := s.banService.RevokeBan(c.UserContext(), banID); rErr != nil {
		return respondServiceError(c, rErr)
	}

	return c.JSON(fiber.Map{
		"message": "Ban revoked",
	})
}

// PromoteToAdmin grants admin rights to a user (admin only)
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, pErr := s.userService.SetAdmin(c.UserContext(), targetID, true)
	if pErr != nil {
		return respondServiceError(c, pErr)
	}

	return c.JSON(user)
}

// DemoteFromAdmin removes admin rights from a user (admin only)
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, dErr := s.userService.SetAdmin(c.UserContext(), targetID, false)
	if dErr != nil {
		return respondServiceError(c, dErr)
	}

	return c.JSON(user)
}
