package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rprovine/reefwatch/internal/infra/config"
	"github.com/rprovine/reefwatch/internal/observability"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, chatHandler *ChatHandler, metrics *observability.Metrics, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		metricsMiddleware(metrics),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/health", handler.Health)
		api.GET("/sites", handler.Sites)
		api.GET("/sites/:site_id", handler.Site)
		api.GET("/sites/:site_id/history", handler.SiteHistory)
		api.GET("/current-conditions", handler.CurrentConditions)
		api.GET("/alerts", handler.Alerts)
		api.GET("/forecast", handler.Forecast)
		api.GET("/forecast/:site_id", handler.SiteForecast)
		api.GET("/recommendations", handler.Recommendations)
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/stream", chatHandler.ChatStream)
		api.DELETE("/chat/:session_id", chatHandler.ClearSession)
		api.POST("/admin/refresh", handler.AdminRefresh)
		api.GET("/admin/stats", handler.AdminStats)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
