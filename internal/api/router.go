package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"calculator-backend/config"
	"calculator-backend/internal/mw"
	"calculator-backend/internal/session"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, sessions *session.Registry) *gin.Engine {
	r := gin.Default()
	handler := NewHandler(sessions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(cacheTTL, 2*cacheTTL), cacheTTL)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessions.Len()})
	})

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/greetings", caching, GetGreetings)

		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions/:id", handler.GetSession)
		api.DELETE("/sessions/:id", handler.DeleteSession)
		api.POST("/sessions/:id/commands", handler.PostCommand)
		api.GET("/sessions/:id/events", handler.StreamDisplay)

		api.GET("/sessions/:id/modal", handler.GetModal)
		api.POST("/sessions/:id/modal/open", handler.OpenModal)
		api.POST("/sessions/:id/modal/close", handler.CloseModal)
	}

	return r
}
