package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nileplate/backend/internal/models"
)

// PantryService manages a session's ingredient inventory.
type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// List returns the session's pantry ordered by expiry, items without an
// expiry date last.
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date IS NULL, expiry_date ASC, ingredient_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert adds an ingredient or replaces the existing row for the same name.
// The ingredient name is normalized so "Tomatoes" and " tomatoes " are one
// pantry entry.
func (s *PantryService) Upsert(ctx context.Context, userID uuid.UUID, name string, quantity float64, unit string, expiry *time.Time) (*models.PantryItem, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("ingredient_name is required")
	}
	if quantity <= 0 {
		quantity = 1
	}
	if unit == "" {
		unit = "unit"
	}

	item := models.PantryItem{
		ID:             uuid.New(),
		UserID:         userID,
		IngredientName: name,
		Quantity:       quantity,
		Unit:           unit,
		ExpiryDate:     expiry,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ingredient_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit", "expiry_date", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the canonical row; on conflict the insert
	// id never lands.
	var saved models.PantryItem
	if err := s.db.WithContext(ctx).Where("user_id = ? AND ingredient_name = ?", userID, name).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// Remove deletes one pantry entry by ingredient name. Returns
// gorm.ErrRecordNotFound when the session owns no such entry.
func (s *PantryService) Remove(ctx context.Context, userID uuid.UUID, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_name = ?", userID, name).
		Delete(&models.PantryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Expiring returns items whose expiry date falls within the next N days,
// already-expired items included.
func (s *PantryService) Expiring(ctx context.Context, userID uuid.UUID, days int) ([]models.PantryItem, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", userID, cutoff).
		Order("expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
