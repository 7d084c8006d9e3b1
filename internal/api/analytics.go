package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nileplate/backend/internal/service"
)

// AnalyticsHandler exposes aggregate search statistics.
type AnalyticsHandler struct {
	analytics service.IAnalyticsService
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics service.IAnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics/popular-ingredients", h.PopularIngredients)
}

func (h *AnalyticsHandler) PopularIngredients(c *gin.Context) {
	ingredients, err := h.analytics.PopularIngredients(c.Request.Context(), 20)
	if err != nil {
		h.logger.Error("popular ingredients query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"popular_ingredients": ingredients,
		"generated_at":        time.Now().UTC().Format(time.RFC3339),
	})
}
