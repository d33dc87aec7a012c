package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/creatorlens/creatorlens-go/internal/middleware"
	"github.com/creatorlens/creatorlens-go/internal/service"
)

type ScriptHandler struct {
	svc *service.ScriptService
}

func NewScriptHandler(svc *service.ScriptService) *ScriptHandler {
	return &ScriptHandler{svc: svc}
}

type generateScriptRequest struct {
	VideoID   string   `json:"videoId"`
	VideoURLs []string `json:"videoUrls"`
}

type updateScriptRequest struct {
	Content string `json:"content"`
}

// Generate handles POST /api/scripts
func (h *ScriptHandler) Generate(c fiber.Ctx) error {
	var req generateScriptRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	script, err := h.svc.Generate(c.Context(), middleware.UserID(c), req.VideoID, req.VideoURLs)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(script)
}

// List handles GET /api/scripts
func (h *ScriptHandler) List(c fiber.Ctx) error {
	scripts, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"scripts": scripts})
}

// Get handles GET /api/scripts/:scriptId
func (h *ScriptHandler) Get(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("scriptId"), 10, 64)
	if err != nil || id <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "scriptId must be a positive integer")
	}

	script, err := h.svc.Get(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(script)
}

// Update handles PUT /api/scripts/:scriptId
func (h *ScriptHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("scriptId"), 10, 64)
	if err != nil || id <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "scriptId must be a positive integer")
	}

	var req updateScriptRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if err := h.svc.Update(c.Context(), middleware.UserID(c), id, req.Content); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/scripts/:scriptId
func (h *ScriptHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("scriptId"), 10, 64)
	if err != nil || id <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "scriptId must be a positive integer")
	}

	if err := h.svc.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
