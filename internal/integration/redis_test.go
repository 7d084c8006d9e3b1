package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/api"
	"github.com/nileplate/backend/internal/cache"
	"github.com/nileplate/backend/internal/middleware"
	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/provider"
	"github.com/nileplate/backend/internal/service"
	"github.com/nileplate/backend/internal/testhelpers"
	"github.com/nileplate/backend/internal/types"
)

// Tests in this file exercise the Redis-backed paths: the search response
// cache, the per-caller search rate limit and the provider call budget. They
// start a Redis container and skip when Docker is unavailable.

// setupRedisRouter assembles the stack with Redis wired in. searchPerHour
// and providerPerMinute enable the limiter and the budget when positive.
func setupRedisRouter(t *testing.T, db *gorm.DB, rdb *redis.Client, upstreamURL string, searchPerHour, providerPerMinute int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	gen, err := provider.New(config.AIConfig{
		Provider:       "deepseek",
		DeepSeekAPIKey: "test-key",
		DeepSeekAPIURL: upstreamURL,
		DeepSeekModel:  "deepseek-chat",
		Timeout:        2 * time.Second,
		MaxAttempts:    1,
		RetryBackoff:   time.Millisecond,
	})
	require.NoError(t, err)

	var budget service.UpstreamBudget
	if providerPerMinute > 0 {
		budget = middleware.NewProviderBudget(rdb, providerPerMinute)
	}
	var limiter *middleware.RateLimiter
	if searchPerHour > 0 {
		limiter = middleware.NewSearchRateLimiter(rdb, searchPerHour)
	}

	suggestions := service.NewSuggestionService(gen, cache.NewSuggestionCache(16), budget, log)
	recipes := service.NewRecipeService(db, rdb, suggestions, config.SearchConfig{
		MaxIngredients: 10,
		MaxResults:     10,
		CandidateLimit: 25,
	}, time.Minute, log)
	sessions := service.NewSessionService(db, "integration-secret", time.Hour, log)

	handlers := api.Handlers{
		Recipes:     api.NewRecipeHandler(recipes, sessions, limiter, log),
		Ingredients: api.NewIngredientHandler(db, suggestions, log),
		Sessions:    api.NewSessionHandler(sessions, log),
		Pantry:      api.NewPantryHandler(service.NewPantryService(db), sessions, log),
		Analytics:   api.NewAnalyticsHandler(service.NewAnalyticsService(db), log),
		Health:      api.NewHealthHandler(db, rdb, config.Version, log),
	}

	router := gin.New()
	handlers.Register(router)
	return router
}

func TestIntegrationResponseCache(t *testing.T) {
	rdb := testhelpers.SetupTestRedis(t)
	db := setupDB(t)

	var upstreamHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(searchCompletion))
	}))
	defer ts.Close()

	router := setupRedisRouter(t, db, rdb, ts.URL, 0, 0)
	searchBody := gin.H{"ingredients": []string{"chicken", "rice"}}

	w := do(t, router, http.MethodPost, "/api/v1/recipes/search", "", searchBody)
	require.Equal(t, http.StatusOK, w.Code)
	var first types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.False(t, first.Cached)

	w = do(t, router, http.MethodPost, "/api/v1/recipes/search", "", searchBody)
	require.Equal(t, http.StatusOK, w.Code)
	var second types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, second.Cached)
	assert.Equal(t, first.Recipes, second.Recipes)
	assert.Equal(t, first.TotalFound, second.TotalFound)

	assert.Equal(t, int32(1), atomic.LoadInt32(&upstreamHits))

	// The cached response short-circuits before the search log.
	var count int64
	require.NoError(t, db.Model(&models.SearchLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The health check reports the connected cache.
	w = do(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "connected", health["cache"])
}

func TestIntegrationSearchRateLimit(t *testing.T) {
	rdb := testhelpers.SetupTestRedis(t)
	db := setupDB(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(searchCompletion))
	}))
	defer ts.Close()

	router := setupRedisRouter(t, db, rdb, ts.URL, 2, 0)

	// Distinct ingredient lists so the response cache never short-circuits
	// the limiter's view of the traffic.
	bodies := []gin.H{
		{"ingredients": []string{"chicken"}},
		{"ingredients": []string{"rice"}},
		{"ingredients": []string{"garlic"}},
	}

	w := do(t, router, http.MethodPost, "/api/v1/recipes/search", "", bodies[0])
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, router, http.MethodPost, "/api/v1/recipes/search", "", bodies[1])
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, router, http.MethodPost, "/api/v1/recipes/search", "", bodies[2])
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate limit exceeded", body["error"])
	assert.Contains(t, body, "retry_after")

	// The blocked request never reached the pipeline.
	var count int64
	require.NoError(t, db.Model(&models.SearchLog{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestIntegrationProviderBudget(t *testing.T) {
	rdb := testhelpers.SetupTestRedis(t)
	db := setupDB(t)

	var upstreamHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(searchCompletion))
	}))
	defer ts.Close()

	router := setupRedisRouter(t, db, rdb, ts.URL, 0, 1)

	w := do(t, router, http.MethodPost, "/api/v1/recipes/search", "", gin.H{
		"ingredients": []string{"chicken", "rice"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&upstreamHits))

	// The second distinct search exceeds the one-call budget and degrades to
	// the deterministic fallback instead of calling upstream.
	w = do(t, router, http.MethodPost, "/api/v1/recipes/search", "", gin.H{
		"ingredients": []string{"beef", "potatoes"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&upstreamHits))

	var search types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	require.NotEmpty(t, search.Recipes)
	assert.Equal(t, models.SourceFallback, search.Recipes[0].Source)
	assert.Equal(t, "Beef and Vegetable Stir-fry", search.Recipes[0].Name)
}
