package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nileplate/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeRating{},
		&models.PantryItem{},
		&models.SearchLog{},
		&models.CommonIngredient{},
	))
	return db
}

func seedRecipe(t *testing.T, db *gorm.DB, name, cuisine string, ingredients []string, difficulty, cookTime int, popularity float64) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		ID:              uuid.New(),
		Name:            name,
		CuisineType:     cuisine,
		Ingredients:     models.JSONBStringArray(ingredients),
		Instructions:    "1. Prepare. 2. Cook. 3. Serve.",
		DifficultyLevel: difficulty,
		CookTimeMinutes: cookTime,
		ServingSize:     4,
		DietaryTags:     models.JSONBStringArray{},
		Source:          models.SourceStored,
		PopularityScore: popularity,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// fakeGenerator is a TextGenerator test double that records every prompt it
// receives and serves a canned response.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	prompts  []string
	response string
	err      error
	delay    time.Duration
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return f.response, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type stubBudget struct {
	allowed bool
	err     error
	calls   int
}

func (b *stubBudget) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	b.calls++
	return b.allowed, 0, time.Time{}, b.err
}
