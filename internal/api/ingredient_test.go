package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nileplate/backend/internal/models"
)

func seedCatalog(t *testing.T, env *testEnv, names map[string]string) {
	t.Helper()
	for name, category := range names {
		require.NoError(t, env.db.Create(&models.CommonIngredient{
			ID:       uuid.New(),
			Name:     name,
			Category: category,
		}).Error)
	}
}

func TestIngredientSuggest(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env, map[string]string{
		"chicken":   models.CategoryProteins,
		"chickpeas": models.CategoryProteins,
		"rice":      models.CategoryGrains,
	})

	w := env.request(t, http.MethodGet, "/api/v1/ingredients/suggest?q=CHICK", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []ingredientSuggestion `json:"suggestions"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, ingredientSuggestion{Name: "chicken", Category: "proteins"}, resp.Suggestions[0])
	assert.Equal(t, ingredientSuggestion{Name: "chickpeas", Category: "proteins"}, resp.Suggestions[1])
}

func TestIngredientSuggestEmptyQuery(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env, map[string]string{"rice": models.CategoryGrains})

	for _, path := range []string{"/api/v1/ingredients/suggest", "/api/v1/ingredients/suggest?q=%20%20"} {
		w := env.request(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"suggestions": []}`, w.Body.String())
	}
}

func TestIngredientSuggestCapsResults(t *testing.T) {
	env := newTestEnv(t)
	catalog := make(map[string]string, 12)
	for i := 0; i < 12; i++ {
		catalog[fmt.Sprintf("spice blend %02d", i)] = models.CategorySpices
	}
	seedCatalog(t, env, catalog)

	w := env.request(t, http.MethodGet, "/api/v1/ingredients/suggest?q=spice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []ingredientSuggestion `json:"suggestions"`
	}
	decodeJSON(t, w, &resp)
	assert.Len(t, resp.Suggestions, 10)
}

func TestIngredientSubstitute(t *testing.T) {
	env := newTestEnv(t)
	env.generator.response = `{"substitutions": ["chicken thighs", "turkey breast", "seitan"]}`

	w := env.request(t, http.MethodGet, "/api/v1/ingredients/substitute?ingredient=chicken&cuisine=global", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"ingredient": "chicken",
		"substitutions": ["chicken thighs", "turkey breast", "seitan"]
	}`, w.Body.String())
}

func TestIngredientSubstituteFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.generator.err = errors.New("upstream down")

	w := env.request(t, http.MethodGet, "/api/v1/ingredients/substitute?ingredient=Butter", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Ingredient    string   `json:"ingredient"`
		Substitutions []string `json:"substitutions"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Butter", resp.Ingredient)
	assert.NotEmpty(t, resp.Substitutions)
}

func TestIngredientSubstituteRequiresParameter(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/ingredients/substitute", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Missing ingredient parameter"}`, w.Body.String())

	assert.Equal(t, 0, env.generator.callCount())
}
