package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/cache"
	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/service"
	"github.com/nileplate/backend/internal/types"
)

// staticCompletion is the canned payload the static generator serves. Two
// recipes with distinct overlaps so merge ordering is observable.
const staticCompletion = "```json\n" + `{
  "recipes": [
    {
      "name": "Chicken Rice Skillet",
      "ingredients": ["chicken", "rice", "garlic"],
      "instructions": "1. Brown the chicken. 2. Add rice and stock, simmer 20 minutes.",
      "cuisine_type": "global",
      "difficulty": 2,
      "cook_time_minutes": 30,
      "servings": 2,
      "dietary_tags": ["gluten-free"]
    },
    {
      "name": "Garlic Fried Rice",
      "ingredients": ["rice", "garlic", "eggs"],
      "instructions": "1. Fry the garlic. 2. Toss in rice and eggs.",
      "cuisine_type": "asian",
      "difficulty": 1,
      "cook_time_minutes": 15,
      "servings": 2,
      "dietary_tags": ["vegetarian"]
    }
  ]
}` + "\n```"

// staticGenerator is an in-process TextGenerator double so handler tests
// never leave the process.
type staticGenerator struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (s *staticGenerator) Name() string { return "static" }

func (s *staticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *staticGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// testEnv wires the full handler surface over an in-memory database, with
// real services underneath and only the provider stubbed out.
type testEnv struct {
	db        *gorm.DB
	router    *gin.Engine
	generator *staticGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	log := zap.NewNop()
	generator := &staticGenerator{response: staticCompletion}
	suggestions := service.NewSuggestionService(generator, cache.NewSuggestionCache(8), nil, log)
	recipes := service.NewRecipeService(db, nil, suggestions, config.SearchConfig{
		MaxIngredients: 10,
		MaxResults:     10,
		CandidateLimit: 25,
	}, time.Minute, log)
	sessions := service.NewSessionService(db, "test-secret", time.Hour, log)

	handlers := Handlers{
		Recipes:     NewRecipeHandler(recipes, sessions, nil, log),
		Ingredients: NewIngredientHandler(db, suggestions, log),
		Sessions:    NewSessionHandler(sessions, log),
		Pantry:      NewPantryHandler(service.NewPantryService(db), sessions, log),
		Analytics:   NewAnalyticsHandler(service.NewAnalyticsService(db), log),
		Health:      NewHealthHandler(db, nil, config.Version, log),
	}

	router := gin.New()
	handlers.Register(router)

	return &testEnv{db: db, router: router, generator: generator}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) openSession(t *testing.T) types.SessionResponse {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var session types.SessionResponse
	decodeJSON(t, w, &session)
	require.NotEmpty(t, session.Token)
	return session
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func seedStoredRecipe(t *testing.T, db *gorm.DB, name, cuisine string, ingredients []string, popularity float64) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		ID:              uuid.New(),
		Name:            name,
		CuisineType:     cuisine,
		Ingredients:     models.JSONBStringArray(ingredients),
		Instructions:    "1. Prepare. 2. Cook. 3. Serve.",
		DifficultyLevel: 3,
		CookTimeMinutes: 30,
		ServingSize:     4,
		DietaryTags:     models.JSONBStringArray{},
		Source:          models.SourceStored,
		PopularityScore: popularity,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
