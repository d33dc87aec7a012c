package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/middleware"
)

// writeError maps service-layer errors to API responses. Every handler
// funnels its service errors through here so the status mapping lives in
// one place.
func writeError(c fiber.Ctx, err error) error {
	var (
		nf  *apperr.NotFoundError
		up  *apperr.UpstreamError
		au  *apperr.AuthError
		val *apperr.ValidationError
	)

	switch {
	case errors.As(err, &val):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", val.Error())
	case errors.As(err, &nf):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", nf.Error())
	case errors.As(err, &au):
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", au.Error())
	case errors.As(err, &up):
		middleware.Logger.Error().Err(err).Str("op", up.Op).Int("upstream_status", up.Status).Msg("upstream call failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR", "Video platform request failed")
	default:
		middleware.Logger.Error().Err(err).Msg("request failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
