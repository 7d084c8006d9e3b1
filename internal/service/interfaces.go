package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/types"
)

// IRecipeService defines the interface for the search pipeline and the
// stored-recipe surface.
type IRecipeService interface {
	Search(ctx context.Context, userID *uuid.UUID, req types.SearchRequest) (*types.SearchResponse, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeCandidate, error)
	ListRecipes(ctx context.Context, q, cuisine, dietary string, limit, offset int) ([]types.RecipeCandidate, error)
	RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, rating int) error
	MarkCooked(ctx context.Context, recipeID uuid.UUID) error
}

// ISuggestionService defines the interface for generated suggestions.
type ISuggestionService interface {
	Suggest(ctx context.Context, ingredients []string, cuisine string, dietary []string, difficulty int) ([]types.RecipeCandidate, error)
	Substitutions(ctx context.Context, ingredient, cuisine string) ([]string, error)
}

// IPantryService defines the interface for pantry operations.
type IPantryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error)
	Upsert(ctx context.Context, userID uuid.UUID, name string, quantity float64, unit string, expiry *time.Time) (*models.PantryItem, error)
	Remove(ctx context.Context, userID uuid.UUID, name string) error
	Expiring(ctx context.Context, userID uuid.UUID, days int) ([]models.PantryItem, error)
}

// ISessionService defines the interface for anonymous sessions.
type ISessionService interface {
	CreateSession(ctx context.Context) (*types.SessionResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	Touch(ctx context.Context, userID uuid.UUID)
}

// IAnalyticsService defines the interface for search analytics.
type IAnalyticsService interface {
	PopularIngredients(ctx context.Context, limit int) ([]string, error)
}
