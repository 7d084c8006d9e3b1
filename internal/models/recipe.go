package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe source values. Stored rows always persist as SourceStored;
// generated and fallback candidates are request-scoped and never written.
const (
	SourceStored    = "stored"
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a stored recipe row. The per-request relevance score never
// lives here; it belongs to types.RecipeCandidate.
type Recipe struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
	Name               string           `gorm:"size:255;not null;uniqueIndex:idx_recipes_name_cuisine" json:"name"`
	CuisineType        string           `gorm:"size:50;not null;default:'global';uniqueIndex:idx_recipes_name_cuisine" json:"cuisine_type"`
	Ingredients        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions       string           `gorm:"type:text;not null" json:"instructions"`
	DifficultyLevel    int              `gorm:"not null;default:3;check:difficulty_level >= 1 AND difficulty_level <= 5" json:"difficulty_level"`
	CookTimeMinutes    int              `gorm:"not null;default:30" json:"cook_time_minutes"`
	ServingSize        int              `gorm:"not null;default:4" json:"serving_size"`
	CaloriesPerServing *int             `json:"calories_per_serving,omitempty"`
	DietaryTags        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_tags"`
	Source             string           `gorm:"size:20;not null;default:'stored'" json:"source"`
	PopularityScore    float64          `gorm:"not null;default:0" json:"popularity_score"`
	Embedding          pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}
