package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hbing/bingsprint/internal/config"
	"github.com/hbing/bingsprint/internal/handler"
	"github.com/hbing/bingsprint/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Bank    *handler.BankHandler
	Session *handler.SessionHandler
}

// SetupRouter configures all Gin route groups.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve the web UI bundle when configured.
	if cfg.StaticDir != "" {
		router.Static("/app", cfg.StaticDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/bank", handlers.Bank.GetBank)
		api.POST("/bank/reload", handlers.Bank.ReloadBank)
		api.GET("/history", handlers.Bank.ListHistory)
		api.POST("/reset", handlers.Bank.ResetAll)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", handlers.Session.Create)
			sessions.GET("/:id", handlers.Session.Get)
			sessions.GET("/:id/question", handlers.Session.GetQuestion)
			sessions.POST("/:id/answer", handlers.Session.Answer)
			sessions.POST("/:id/advance", handlers.Session.Advance)
			sessions.POST("/:id/submit", handlers.Session.Submit)
		}
	}

	return router
}
