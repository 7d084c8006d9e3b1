package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nileplate/backend/internal/models"
)

// analyticsWindow is how far back the popularity aggregation looks.
const analyticsWindow = 30 * 24 * time.Hour

// AnalyticsService aggregates search logs.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// PopularIngredients counts ingredient occurrences across the last 30 days
// of search logs and returns the most frequent names, count descending with
// ties broken alphabetically.
func (s *AnalyticsService) PopularIngredients(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	var logs []models.SearchLog
	cutoff := time.Now().Add(-analyticsWindow)
	if err := s.db.WithContext(ctx).Where("created_at > ?", cutoff).Find(&logs).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, entry := range logs {
		for _, ing := range entry.Ingredients {
			ing = strings.ToLower(strings.TrimSpace(ing))
			if ing != "" {
				counts[ing]++
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}
