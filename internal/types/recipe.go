package types

import "github.com/google/uuid"

// RecipeCandidate is the wire shape a search returns and the unit the merge
// step ranks. Stored rows, generated suggestions and fallback recipes all
// flatten into this one shape; ID is set for stored rows only.
type RecipeCandidate struct {
	ID              *uuid.UUID `json:"id,omitempty"`
	Name            string     `json:"name"`
	Ingredients     []string   `json:"ingredients"`
	Instructions    string     `json:"instructions"`
	CuisineType     string     `json:"cuisine_type"`
	DifficultyLevel int        `json:"difficulty_level"`
	CookTimeMinutes int        `json:"cook_time_minutes"`
	ServingSize     int        `json:"serving_size"`
	DietaryTags     []string   `json:"dietary_tags"`
	Source          string     `json:"source"`
	Score           float64    `json:"score"`
	PopularityScore float64    `json:"popularity_score"`
	AvgRating       *float64   `json:"avg_rating,omitempty"`
	RatingCount     int        `json:"rating_count,omitempty"`
}
