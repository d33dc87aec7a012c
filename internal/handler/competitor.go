package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/creatorlens/creatorlens-go/internal/middleware"
	"github.com/creatorlens/creatorlens-go/internal/service"
)

type CompetitorHandler struct {
	svc *service.CompetitorService
}

func NewCompetitorHandler(svc *service.CompetitorService) *CompetitorHandler {
	return &CompetitorHandler{svc: svc}
}

type addCompetitorRequest struct {
	Channel string `json:"channel"`
}

// Add handles POST /api/competitors
func (h *CompetitorHandler) Add(c fiber.Ctx) error {
	var req addCompetitorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	input, errMsg := middleware.ValidateChannelInput(req.Channel)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.AddCompetitor(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return writeError(c, err)
	}

	if Metrics.CompetitorsAdded != nil {
		Metrics.CompetitorsAdded.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Refresh handles POST /api/competitors/:channelId/refresh
func (h *CompetitorHandler) Refresh(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.RefreshCompetitor(c.Context(), middleware.UserID(c), channelID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

// Delete handles DELETE /api/competitors/:channelId
func (h *CompetitorHandler) Delete(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.RemoveCompetitor(c.Context(), middleware.UserID(c), channelID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
