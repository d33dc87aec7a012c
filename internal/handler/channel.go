package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/creatorlens/creatorlens-go/internal/middleware"
	"github.com/creatorlens/creatorlens-go/internal/service"
)

type ChannelHandler struct {
	svc *service.CompetitorService
}

func NewChannelHandler(svc *service.CompetitorService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	channels, err := h.svc.ListChannels(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"channels": channels})
}

// Get handles GET /api/channels/:channelId
func (h *ChannelHandler) Get(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.GetChannelData(c.Context(), middleware.UserID(c), channelID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

// History handles GET /api/channels/:channelId/snapshots
func (h *ChannelHandler) History(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	history, err := h.svc.GetViewHistory(c.Context(), middleware.UserID(c), channelID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"snapshots": history})
}

// TopVideos handles GET /api/channels/:channelId/videos/top?limit=N
func (h *ChannelHandler) TopVideos(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	limit := fiber.Query[int](c, "limit")

	videos, err := h.svc.GetTopVideos(c.Context(), middleware.UserID(c), channelID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"videos": videos})
}
