package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient categories used by the seeded catalog and the fallback filter.
const (
	CategoryProteins   = "proteins"
	CategoryVegetables = "vegetables"
	CategoryGrains     = "grains"
	CategorySpices     = "spices"
	CategoryPantry     = "pantry"
	CategorySudanese   = "sudanese"
)

// CommonIngredient is one entry of the seeded ingredient catalog backing
// autocomplete and the fallback category checks.
type CommonIngredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category  string    `gorm:"size:20;not null;index" json:"category"`
}

func (CommonIngredient) TableName() string {
	return "common_ingredients"
}
