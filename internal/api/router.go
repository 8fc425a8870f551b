// Package api wires the HTTP surface of the dashboard: the market and
// demographics endpoints, the notification websocket, health, metrics and
// the single-page frontend.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"agri-market/internal/api/handlers"
	"agri-market/internal/api/middleware"
	"agri-market/internal/api/models"
	"agri-market/internal/config"
	"agri-market/internal/data"
	"agri-market/internal/demographics"
	"agri-market/internal/metrics"
	"agri-market/internal/notify"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router serves.
type Deps struct {
	Store    *data.Store
	Page     *demographics.Page
	Notifier notify.Notifier
	Hub      *notify.Hub // optional; enables /api/v1/ws
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewRouter builds the gin engine.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Metrics(deps.Metrics))

	var clients handlers.ClientCounter
	if deps.Hub != nil {
		clients = deps.Hub
	}
	router.GET("/health", handlers.Health(deps.Store, clients))
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// routes that trigger work share one limiter
	limited := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		limited = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger).Handler()
	}

	marketHandler := handlers.NewMarketHandler(deps.Store, deps.Notifier, deps.Metrics, logger)
	demoHandler := handlers.NewDemographicsHandler(deps.Page, deps.Notifier, deps.Metrics, logger)

	api := router.Group("/api/v1")
	{
		api.GET("/market", marketHandler.List)
		api.GET("/market/cards", marketHandler.Cards)
		api.GET("/market/options", marketHandler.Options)
		api.GET("/market/summary", marketHandler.Summary)
		api.GET("/market/movers", marketHandler.Movers)
		api.POST("/market/refresh", limited, marketHandler.Refresh)
		api.GET("/market/export", limited, marketHandler.Export)

		api.GET("/demographics", demoHandler.Get)
		api.PUT("/demographics/selection", demoHandler.Select)
		api.POST("/demographics/report", limited, demoHandler.Report)

		if deps.Hub != nil {
			api.GET("/ws", gin.WrapH(deps.Hub))
		}
	}

	serveFrontend(router, cfg.Server.StaticDir, logger)
	return router
}

// serveFrontend serves the built SPA from dir, falling back to index.html
// for client-side routes. API paths never fall back.
func serveFrontend(router *gin.Engine, dir string, logger *slog.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", "Not found", nil))
	}

	if info, err := os.Stat(dir); dir == "" || err != nil || !info.IsDir() {
		logger.Info("static directory not found, skipping static file serving", slog.String("dir", dir))
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	logger.Info("serving static files", slog.String("dir", dir))
}
