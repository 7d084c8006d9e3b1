package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler reports process health for deployment monitoring. The
// database is load-bearing; Redis degrades gracefully, so its state is
// reported but never fails the check.
type HealthHandler struct {
	db      *gorm.DB
	redis   *redis.Client
	version string
	logger  *zap.Logger
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redisClient,
		version: version,
		logger:  logger,
	}
}

func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	cache := "disabled"
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			cache = "disconnected"
		} else {
			cache = "connected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"database":  "connected",
		"cache":     cache,
	})
}
