package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/creatorlens/creatorlens-go/internal/handler"
	"github.com/creatorlens/creatorlens-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Competitor *handler.CompetitorHandler
	Channel    *handler.ChannelHandler
	Script     *handler.ScriptHandler
	Analytics  *handler.AnalyticsHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins, bearerToken string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks and metrics (before API group, no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	readLimit := middleware.NewReadRateLimiter()
	writeLimit := middleware.NewCompetitorWriteRateLimiter()
	scriptLimit := middleware.NewScriptRateLimiter()
	analyticsLimit := middleware.NewAnalyticsRateLimiter()

	// All /api routes are scoped to the caller's X-User-ID.
	api := app.Group("/api", middleware.RequireUserID())

	// Competitor routes
	api.Post("/competitors", h.Competitor.Add, writeLimit.Handler())
	api.Post("/competitors/:channelId/refresh", h.Competitor.Refresh, writeLimit.Handler())
	api.Delete("/competitors/:channelId", h.Competitor.Delete, writeLimit.Handler())

	// Channel routes
	api.Get("/channels", h.Channel.List, readLimit.Handler())
	api.Get("/channels/:channelId", h.Channel.Get, readLimit.Handler())
	api.Get("/channels/:channelId/videos/top", h.Channel.TopVideos, readLimit.Handler())
	api.Get("/channels/:channelId/snapshots", h.Channel.History, readLimit.Handler())

	// Script routes
	api.Post("/scripts", h.Script.Generate, scriptLimit.Handler())
	api.Get("/scripts", h.Script.List, scriptLimit.Handler())
	api.Get("/scripts/:scriptId", h.Script.Get, scriptLimit.Handler())
	api.Put("/scripts/:scriptId", h.Script.Update, scriptLimit.Handler())
	api.Delete("/scripts/:scriptId", h.Script.Delete, scriptLimit.Handler())

	// Analytics routes (bearer-protected, they touch stored OAuth tokens)
	api.Get("/analytics/channel", h.Analytics.OwnChannel,
		middleware.RequireBearer(bearerToken), analyticsLimit.Handler())
}
