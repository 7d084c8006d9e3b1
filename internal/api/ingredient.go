package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/service"
)

// IngredientHandler serves the autocomplete catalog and substitution lookups.
type IngredientHandler struct {
	db          *gorm.DB
	suggestions service.ISuggestionService
	logger      *zap.Logger
}

func NewIngredientHandler(db *gorm.DB, suggestions service.ISuggestionService, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{
		db:          db,
		suggestions: suggestions,
		logger:      logger,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("/suggest", h.Suggest)
		ingredients.GET("/substitute", h.Substitute)
	}
}

type ingredientSuggestion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Suggest autocompletes against the common ingredient catalog.
func (h *IngredientHandler) Suggest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []ingredientSuggestion{}})
		return
	}

	var rows []models.CommonIngredient
	err := h.db.WithContext(c.Request.Context()).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%").
		Order("name ASC").
		Limit(10).
		Find(&rows).Error
	if err != nil {
		h.logger.Error("ingredient autocomplete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	suggestions := make([]ingredientSuggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, ingredientSuggestion{Name: row.Name, Category: row.Category})
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Substitute looks up replacements for a single ingredient.
func (h *IngredientHandler) Substitute(c *gin.Context) {
	ingredient := strings.TrimSpace(c.Query("ingredient"))
	if ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ingredient parameter"})
		return
	}

	substitutions, err := h.suggestions.Substitutions(c.Request.Context(), ingredient, c.Query("cuisine"))
	if err != nil {
		h.logger.Error("substitution lookup failed", zap.String("ingredient", ingredient), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch substitutions"})
		return
	}
	if substitutions == nil {
		substitutions = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient":    ingredient,
		"substitutions": substitutions,
	})
}
