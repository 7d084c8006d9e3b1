package api

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the server mounts.
type Handlers struct {
	Recipes     *RecipeHandler
	Ingredients *IngredientHandler
	Sessions    *SessionHandler
	Pantry      *PantryHandler
	Analytics   *AnalyticsHandler
	Health      *HealthHandler
}

// Register mounts the health probe at the root and the API surface
// under /api/v1.
func (h Handlers) Register(router *gin.Engine) {
	h.Health.Register(router)

	v1 := router.Group("/api/v1")
	{
		h.Sessions.RegisterRoutes(v1)
		h.Recipes.RegisterRoutes(v1)
		h.Ingredients.RegisterRoutes(v1)
		h.Pantry.RegisterRoutes(v1)
		h.Analytics.RegisterRoutes(v1)
	}
}
