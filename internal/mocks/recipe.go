package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nileplate/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Search(ctx context.Context, userID *uuid.UUID, req types.SearchRequest) (*types.SearchResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SearchResponse), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeCandidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeCandidate), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, q, cuisine, dietary string, limit, offset int) ([]types.RecipeCandidate, error) {
	args := m.Called(ctx, q, cuisine, dietary, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeCandidate), args.Error(1)
}

func (m *MockRecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, rating int) error {
	args := m.Called(ctx, recipeID, userID, rating)
	return args.Error(0)
}

func (m *MockRecipeService) MarkCooked(ctx context.Context, recipeID uuid.UUID) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}
