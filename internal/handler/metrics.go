package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the CreatorLens backend.
var Metrics = struct {
	UpstreamCalls    *prometheus.CounterVec
	CompetitorsAdded prometheus.Counter
	SnapshotRuns     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatorlens_upstream_calls_total",
			Help: "Video platform Data API calls, by operation and status.",
		},
		[]string{"op", "status"},
	)

	Metrics.CompetitorsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "creatorlens_competitors_added_total",
			Help: "Total competitor channels added.",
		},
	)

	Metrics.SnapshotRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatorlens_snapshot_channels_total",
			Help: "Channels processed by the daily snapshot job, by outcome.",
		},
		[]string{"outcome"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creatorlens_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "creatorlens_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "creatorlens_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "creatorlens_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "creatorlens_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "creatorlens_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.UpstreamCalls,
		Metrics.CompetitorsAdded,
		Metrics.SnapshotRuns,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
	)
}

// UpstreamCallHook feeds the Data API client's per-call hook.
func UpstreamCallHook(op string, status int) {
	if Metrics.UpstreamCalls != nil {
		Metrics.UpstreamCalls.WithLabelValues(op, strconv.Itoa(status)).Inc()
	}
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/channels/"):
		if strings.HasSuffix(path, "/videos/top") {
			return "/api/channels/:channelId/videos/top"
		}
		if strings.HasSuffix(path, "/snapshots") {
			return "/api/channels/:channelId/snapshots"
		}
		return "/api/channels/:channelId"
	case strings.HasPrefix(path, "/api/competitors/"):
		if strings.HasSuffix(path, "/refresh") {
			return "/api/competitors/:channelId/refresh"
		}
		return "/api/competitors/:channelId"
	case strings.HasPrefix(path, "/api/scripts/"):
		return "/api/scripts/:scriptId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
