package models

import (
	"time"

	"github.com/google/uuid"
)

// PantryItem is one ingredient a session owns. A user holds at most one row
// per ingredient name; writes upsert on the (user_id, ingredient_name) pair.
type PantryItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_pantry_user_ingredient" json:"user_id"`
	IngredientName string     `gorm:"size:100;not null;uniqueIndex:idx_pantry_user_ingredient" json:"ingredient_name"`
	Quantity       float64    `gorm:"not null;default:1" json:"quantity"`
	Unit           string     `gorm:"size:20;not null;default:'unit'" json:"unit"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
}

func (PantryItem) TableName() string {
	return "pantry_items"
}
