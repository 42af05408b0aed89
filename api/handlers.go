package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/recipe-search/internal/analytics"
	"github.com/gcbaptista/recipe-search/internal/logging"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/services"
)

// DefaultMaxRequestBytes caps request bodies when no limit is configured.
const DefaultMaxRequestBytes = 1 << 20

// Options carries the optional collaborators of the API.
type Options struct {
	Analytics       *analytics.Service
	Metrics         *metrics.Metrics
	MaxRequestBytes int64
}

// API holds dependencies for API handlers, primarily the search engine.
type API struct {
	engine    services.Engine
	analytics *analytics.Service
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.Engine, opts Options) *API {
	tracker := opts.Analytics
	if tracker == nil {
		tracker = analytics.NewService(analytics.DefaultCapacity, "")
	}
	return &API{
		engine:    engine,
		analytics: tracker,
		metrics:   opts.Metrics,
		logger:    logging.WithComponent("api"),
	}
}

// SetupRoutes installs middleware and defines all the API routes.
func SetupRoutes(router *gin.Engine, engine services.Engine, opts Options) *API {
	apiHandler := NewAPI(engine, opts)

	maxBytes := opts.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}

	router.Use(
		RequestIDMiddleware(),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(maxBytes),
		MetricsMiddleware(opts.Metrics),
	)

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.GetStatsHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	router.POST("/search", apiHandler.SearchHandler)
	router.GET("/recipes/:id", apiHandler.GetRecipeHandler)

	router.POST("/index/_rebuild", apiHandler.RebuildIndexHandler)
	router.GET("/jobs/:jobId", apiHandler.GetJobHandler)

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	return apiHandler
}
