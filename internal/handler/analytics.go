package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/creatorlens/creatorlens-go/internal/middleware"
	"github.com/creatorlens/creatorlens-go/internal/service"
)

type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// OwnChannel handles GET /api/analytics/channel
func (h *AnalyticsHandler) OwnChannel(c fiber.Ctx) error {
	profile, err := h.svc.OwnChannelStats(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}
