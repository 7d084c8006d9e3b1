package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an anonymous session identity. There are no credentials; a row is
// created when a client opens a session and its id travels in the session
// token. LastActiveAt feeds the housekeeping sweep.
type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Preferences  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"preferences"`
	LastActiveAt time.Time        `gorm:"not null;index" json:"last_active_at"`
}

func (User) TableName() string {
	return "users"
}
