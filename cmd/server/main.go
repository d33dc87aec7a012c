package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/creatorlens/creatorlens-go/internal/config"
	"github.com/creatorlens/creatorlens-go/internal/db"
	"github.com/creatorlens/creatorlens-go/internal/handler"
	"github.com/creatorlens/creatorlens-go/internal/middleware"
	"github.com/creatorlens/creatorlens-go/internal/oauth"
	"github.com/creatorlens/creatorlens-go/internal/repository"
	"github.com/creatorlens/creatorlens-go/internal/router"
	"github.com/creatorlens/creatorlens-go/internal/service"
	"github.com/creatorlens/creatorlens-go/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "creatorlens")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	cache.SetHitHooks(
		func() { handler.Metrics.CacheHits.Inc() },
		func() { handler.Metrics.CacheMisses.Inc() },
	)
	defer cache.Close()

	yt := youtube.NewClient(cfg.YouTubeAPIKey, youtube.WithCallHook(handler.UpstreamCallHook))
	resolver := youtube.NewResolver(yt)
	refresher := oauth.NewRefresher(cfg.OAuthClientID, cfg.OAuthClientSecret)

	channelRepo := repository.NewChannelRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	snapshotRepo := repository.NewSnapshotRepo(pool)
	scriptRepo := repository.NewScriptRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	competitorSvc := service.NewCompetitorService(resolver, yt, channelRepo, videoRepo, snapshotRepo, cache)
	scriptSvc := service.NewScriptService(scriptRepo)
	analyticsSvc := service.NewAnalyticsService(userRepo, channelRepo, refresher, yt)

	interval, err := time.ParseDuration(cfg.SnapshotInterval)
	if err != nil {
		log.Printf("invalid SNAPSHOT_INTERVAL %q, using 24h", cfg.SnapshotInterval)
		interval = 24 * time.Hour
	}
	worker := service.NewSnapshotWorker(channelRepo, snapshotRepo, yt, interval)
	worker.SetOutcomeHook(func(outcome string) {
		handler.Metrics.SnapshotRuns.WithLabelValues(outcome).Inc()
	})
	go worker.Start(ctx)
	defer worker.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "CreatorLens API",
		ServerHeader: "CreatorLens",
	})

	h := &router.Handlers{
		Competitor: handler.NewCompetitorHandler(competitorSvc),
		Channel:    handler.NewChannelHandler(competitorSvc),
		Script:     handler.NewScriptHandler(scriptSvc),
		Analytics:  handler.NewAnalyticsHandler(analyticsSvc),
		Health:     handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins, cfg.APIBearerToken)

	log.Printf("CreatorLens backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
