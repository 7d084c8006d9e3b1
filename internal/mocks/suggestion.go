package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nileplate/backend/internal/types"
)

// MockSuggestionService is a mock implementation of service.ISuggestionService.
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) Suggest(ctx context.Context, ingredients []string, cuisine string, dietary []string, difficulty int) ([]types.RecipeCandidate, error) {
	args := m.Called(ctx, ingredients, cuisine, dietary, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeCandidate), args.Error(1)
}

func (m *MockSuggestionService) Substitutions(ctx context.Context, ingredient, cuisine string) ([]string, error) {
	args := m.Called(ctx, ingredient, cuisine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
