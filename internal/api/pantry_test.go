package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/types"
)

func TestPantryRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/pantry"},
		{http.MethodPost, "/api/v1/pantry/items"},
		{http.MethodDelete, "/api/v1/pantry/items/milk"},
		{http.MethodGet, "/api/v1/pantry/expiring"},
	} {
		w := env.request(t, route.method, route.path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestPantryRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	session := env.openSession(t)

	w := env.request(t, http.MethodPost, "/api/v1/pantry/items", session.Token, types.PantryUpsertRequest{
		IngredientName: "Tomatoes",
		Quantity:       3,
		Unit:           "pieces",
		ExpiryDate:     "2026-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Item models.PantryItem `json:"item"`
	}
	decodeJSON(t, w, &created)
	assert.Equal(t, "tomatoes", created.Item.IngredientName)
	assert.Equal(t, session.UserID, created.Item.UserID)
	require.NotNil(t, created.Item.ExpiryDate)
	assert.Equal(t, "2026-09-01", created.Item.ExpiryDate.Format("2006-01-02"))

	w = env.request(t, http.MethodGet, "/api/v1/pantry", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Pantry []models.PantryItem `json:"pantry"`
	}
	decodeJSON(t, w, &listed)
	require.Len(t, listed.Pantry, 1)
	assert.Equal(t, "tomatoes", listed.Pantry[0].IngredientName)

	w = env.request(t, http.MethodDelete, "/api/v1/pantry/items/Tomatoes", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Item removed from pantry"}`, w.Body.String())

	w = env.request(t, http.MethodDelete, "/api/v1/pantry/items/Tomatoes", session.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Item not found in pantry"}`, w.Body.String())
}

func TestPantryUpsertValidation(t *testing.T) {
	env := newTestEnv(t)
	session := env.openSession(t)

	w := env.request(t, http.MethodPost, "/api/v1/pantry/items", session.Token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "ingredient_name is required"}`, w.Body.String())

	w = env.request(t, http.MethodPost, "/api/v1/pantry/items", session.Token, types.PantryUpsertRequest{
		IngredientName: "milk",
		ExpiryDate:     "01/09/2026",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "expiry_date must be formatted as YYYY-MM-DD"}`, w.Body.String())
}

func TestPantryExpiringEndpoint(t *testing.T) {
	env := newTestEnv(t)
	session := env.openSession(t)

	soon := time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02")
	later := time.Now().UTC().Add(240 * time.Hour).Format("2006-01-02")
	for name, expiry := range map[string]string{"milk": soon, "flour": later} {
		w := env.request(t, http.MethodPost, "/api/v1/pantry/items", session.Token, types.PantryUpsertRequest{
			IngredientName: name,
			ExpiryDate:     expiry,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, http.MethodGet, "/api/v1/pantry/expiring?days=3", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Expiring []models.PantryItem `json:"expiring"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Expiring, 1)
	assert.Equal(t, "milk", resp.Expiring[0].IngredientName)

	w = env.request(t, http.MethodGet, "/api/v1/pantry/expiring?days=banana", session.Token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
