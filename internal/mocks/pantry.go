package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nileplate/backend/internal/models"
)

// MockPantryService is a mock implementation of service.IPantryService.
type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PantryItem), args.Error(1)
}

func (m *MockPantryService) Upsert(ctx context.Context, userID uuid.UUID, name string, quantity float64, unit string, expiry *time.Time) (*models.PantryItem, error) {
	args := m.Called(ctx, userID, name, quantity, unit, expiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PantryItem), args.Error(1)
}

func (m *MockPantryService) Remove(ctx context.Context, userID uuid.UUID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockPantryService) Expiring(ctx context.Context, userID uuid.UUID, days int) ([]models.PantryItem, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PantryItem), args.Error(1)
}

// MockAnalyticsService is a mock implementation of service.IAnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) PopularIngredients(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
