package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/internal/middleware"
	"github.com/nileplate/backend/internal/service"
	"github.com/nileplate/backend/internal/types"
)

const expiryDateLayout = "2006-01-02"

// PantryHandler manages a session's ingredient inventory. Every route
// requires a valid session token.
type PantryHandler struct {
	pantry   service.IPantryService
	sessions service.ISessionService
	logger   *zap.Logger
}

func NewPantryHandler(pantry service.IPantryService, sessions service.ISessionService, logger *zap.Logger) *PantryHandler {
	return &PantryHandler{
		pantry:   pantry,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	pantry.Use(middleware.RequireSession(h.sessions, h.sessions))
	{
		pantry.GET("", h.List)
		pantry.POST("/items", h.UpsertItem)
		pantry.DELETE("/items/:ingredient", h.RemoveItem)
		pantry.GET("/expiring", h.Expiring)
	}
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.pantry.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("pantry fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pantry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pantry": items})
}

func (h *PantryHandler) UpsertItem(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.PantryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient_name is required"})
		return
	}

	var expiry *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(expiryDateLayout, req.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be formatted as YYYY-MM-DD"})
			return
		}
		expiry = &parsed
	}

	item, err := h.pantry.Upsert(c.Request.Context(), userID, req.IngredientName, req.Quantity, req.Unit, expiry)
	if err != nil {
		h.logger.Error("pantry upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pantry item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *PantryHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.pantry.Remove(c.Request.Context(), userID, c.Param("ingredient")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in pantry"})
			return
		}
		h.logger.Error("pantry removal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove pantry item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from pantry"})
}

func (h *PantryHandler) Expiring(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	days := 3
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}

	items, err := h.pantry.Expiring(c.Request.Context(), userID, days)
	if err != nil {
		h.logger.Error("expiring fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expiring items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expiring": items})
}
