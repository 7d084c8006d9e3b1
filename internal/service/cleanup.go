package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/internal/models"
)

// Retention windows for the housekeeping sweep.
const (
	searchLogRetention = 30 * 24 * time.Hour
	sessionRetention   = 7 * 24 * time.Hour
)

// CleanupStats counts what one sweep removed.
type CleanupStats struct {
	SearchLogs  int64
	PantryItems int64
	Users       int64
}

// CleanupService removes aged rows: old search logs, pantry items past
// their expiry date, and sessions inactive for a week (with their pantry).
type CleanupService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCleanupService(db *gorm.DB, logger *zap.Logger) *CleanupService {
	return &CleanupService{db: db, logger: logger}
}

// Run performs one sweep. Steps are independent; a failing step is logged
// and the others still run.
func (s *CleanupService) Run(ctx context.Context) CleanupStats {
	var stats CleanupStats
	now := time.Now()

	res := s.db.WithContext(ctx).
		Where("created_at < ?", now.Add(-searchLogRetention)).
		Delete(&models.SearchLog{})
	if res.Error != nil {
		s.logger.Warn("search log cleanup failed", zap.Error(res.Error))
	} else {
		stats.SearchLogs = res.RowsAffected
	}

	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	res = s.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date < ?", today).
		Delete(&models.PantryItem{})
	if res.Error != nil {
		s.logger.Warn("pantry cleanup failed", zap.Error(res.Error))
	} else {
		stats.PantryItems = res.RowsAffected
	}

	var inactive []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("last_active_at < ?", now.Add(-sessionRetention)).
		Pluck("id", &inactive).Error
	if err != nil {
		s.logger.Warn("inactive session lookup failed", zap.Error(err))
	} else if len(inactive) > 0 {
		if err := s.db.WithContext(ctx).Where("user_id IN ?", inactive).Delete(&models.PantryItem{}).Error; err != nil {
			s.logger.Warn("inactive session pantry cleanup failed", zap.Error(err))
		}
		res = s.db.WithContext(ctx).Unscoped().Where("id IN ?", inactive).Delete(&models.User{})
		if res.Error != nil {
			s.logger.Warn("inactive session cleanup failed", zap.Error(res.Error))
		} else {
			stats.Users = res.RowsAffected
		}
	}

	s.logger.Info("housekeeping sweep finished",
		zap.Int64("search_logs", stats.SearchLogs),
		zap.Int64("pantry_items", stats.PantryItems),
		zap.Int64("users", stats.Users))
	return stats
}
