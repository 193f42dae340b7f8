package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tafhim-87/Quran-track/config"
	"github.com/Tafhim-87/Quran-track/internal/api/handler"
	"github.com/Tafhim-87/Quran-track/internal/api/middleware"
	"github.com/Tafhim-87/Quran-track/pkg/redis"
)

// Setup builds the Gin engine with all middleware and routes.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// reading module
		readings := v1.Group("/readings")
		{
			// one submission per participant per day; the limiter only fends
			// off accidental client retries, the service enforces the rule
			readings.POST("", middleware.RateLimit(rdb, 10, time.Minute), h.Reading.Submit)
			readings.GET("", h.Reading.List)
		}

		// participant module
		participants := v1.Group("/participants")
		{
			participants.GET("", h.Participant.List)
			participants.GET("/:name/progress", h.Participant.Progress)
		}

		// campaign module
		campaign := v1.Group("/campaign")
		{
			campaign.GET("", h.Campaign.Info)
			campaign.GET("/calendar.ics", h.Export.Calendar)
		}

		// export module
		export := v1.Group("/export")
		{
			export.GET("/readings", h.Export.ExportReadings)
		}
	}

	return r
}
