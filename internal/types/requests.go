package types

import (
	"time"

	"github.com/google/uuid"
)

// SearchRequest is the body of POST /api/v1/recipes/search. Difficulty and
// MaxCookTime are pointers so an absent field can fall back to its default
// without colliding with an explicit zero.
type SearchRequest struct {
	Ingredients         []string `json:"ingredients" binding:"required"`
	CuisinePreference   string   `json:"cuisine_preference"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Difficulty          *int     `json:"difficulty"`
	MaxCookTime         *int     `json:"max_cook_time"`
}

// SearchMeta echoes the normalized parameters a search ran with.
type SearchMeta struct {
	IngredientsUsed   []string  `json:"ingredients_used"`
	CuisinePreference string    `json:"cuisine_preference"`
	Difficulty        int       `json:"difficulty"`
	Timestamp         time.Time `json:"timestamp"`
}

// SearchResponse is the search result body. It round-trips through the
// response cache, so it stays a typed struct rather than an ad-hoc map.
type SearchResponse struct {
	Recipes    []RecipeCandidate `json:"recipes"`
	TotalFound int               `json:"total_found"`
	SearchMeta SearchMeta        `json:"search_meta"`
	Cached     bool              `json:"cached"`
}

// PantryUpsertRequest adds or updates one pantry item. ExpiryDate uses the
// 2006-01-02 form; the handler parses it.
type PantryUpsertRequest struct {
	IngredientName string  `json:"ingredient_name" binding:"required"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	ExpiryDate     string  `json:"expiry_date"`
}

// RateRecipeRequest rates a stored recipe.
type RateRecipeRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// SessionResponse is returned when a session is opened.
type SessionResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
