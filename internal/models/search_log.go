package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog records one search request for the popularity analytics window.
// UserID is nil for anonymous searches.
type SearchLog struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	UserID      *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	CuisineType string           `gorm:"size:50" json:"cuisine_type"`
	ResultCount int              `gorm:"not null;default:0" json:"result_count"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}
