package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nileplate/backend/internal/models"
)

func TestPopularIngredientsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	for _, ingredients := range [][]string{
		{"chicken", "rice"},
		{"chicken", "onions"},
		{"rice"},
	} {
		require.NoError(t, env.db.Create(&models.SearchLog{
			ID:          uuid.New(),
			Ingredients: models.JSONBStringArray(ingredients),
			ResultCount: 1,
		}).Error)
	}

	w := env.request(t, http.MethodGet, "/api/v1/analytics/popular-ingredients", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PopularIngredients []string `json:"popular_ingredients"`
		GeneratedAt        string   `json:"generated_at"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, []string{"chicken", "rice", "onions"}, resp.PopularIngredients)
	assert.NotEmpty(t, resp.GeneratedAt)
}

func TestPopularIngredientsEndpointEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/analytics/popular-ingredients", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PopularIngredients []string `json:"popular_ingredients"`
	}
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.PopularIngredients)
}
