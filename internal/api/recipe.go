package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/internal/middleware"
	"github.com/nileplate/backend/internal/service"
	"github.com/nileplate/backend/internal/types"
)

// RecipeHandler serves the search pipeline and the stored recipe surface.
type RecipeHandler struct {
	recipes  service.IRecipeService
	sessions service.ISessionService
	limiter  *middleware.RateLimiter
	logger   *zap.Logger
}

// NewRecipeHandler creates a RecipeHandler. limiter may be nil, which leaves
// the search route unthrottled.
func NewRecipeHandler(recipes service.IRecipeService, sessions service.ISessionService, limiter *middleware.RateLimiter, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		search := []gin.HandlerFunc{middleware.OptionalSession(h.sessions, h.sessions)}
		if h.limiter != nil {
			search = append(search, h.limiter.RateLimitMiddleware())
		}
		search = append(search, h.Search)
		recipes.POST("/search", search...)

		recipes.POST("/:id/rate", middleware.RequireSession(h.sessions, h.sessions), h.RateRecipe)
		recipes.POST("/:id/cooked", middleware.RequireSession(h.sessions, h.sessions), h.MarkCooked)
	}
}

// Search runs the ingredient search pipeline.
func (h *RecipeHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredients list is required"})
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.UserIDFrom(c); ok {
		userID = &id
	}

	resp, err := h.recipes.Search(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyIngredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one ingredient is required"})
			return
		}
		h.logger.Error("recipe search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListRecipes is the browse surface.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	recipes, err := h.recipes.ListRecipes(c.Request.Context(),
		c.Query("q"), c.Query("cuisine"), c.Query("dietary"), limit, offset)
	if err != nil {
		h.logger.Error("recipe browse failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("recipe fetch failed", zap.String("recipe_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipes.RateRecipe(c.Request.Context(), id, userID, req.Rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("recipe rating failed", zap.String("recipe_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rate recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating recorded"})
}

func (h *RecipeHandler) MarkCooked(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	if err := h.recipes.MarkCooked(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("cook event failed", zap.String("recipe_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record cook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cook recorded"})
}
