package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbook/backend/internal/models"
)

// registerAdmin promotes a fresh account to administrator.
func registerAdmin(t *testing.T, env *testEnv, email, username string) (uuid.UUID, string) {
	t.Helper()
	id, token := registerUser(t, env, email, username)
	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", id).Update("is_admin", true).Error)
	return id, token
}

func TestTagEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, userToken := registerUser(t, env, "ada@example.com", "ada")
	_, adminToken := registerAdmin(t, env, "root@example.com", "root")

	tagBody := map[string]interface{}{
		"name": "Breakfast", "color": "#E26C2D", "slug": "breakfast",
	}

	// Only administrators may create tags.
	w := performRequest(env.Router, http.MethodPost, "/api/v1/tags", "", tagBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = performRequest(env.Router, http.MethodPost, "/api/v1/tags", userToken, tagBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(env.Router, http.MethodPost, "/api/v1/tags", adminToken, tagBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate slug is rejected.
	w = performRequest(env.Router, http.MethodPost, "/api/v1/tags", adminToken, tagBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Anyone can read.
	w = performRequest(env.Router, http.MethodGet, "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tags []models.Tag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "breakfast", tags[0].Slug)

	w = performRequest(env.Router, http.MethodGet, "/api/v1/tags/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(env.Router, http.MethodGet, "/api/v1/tags/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIngredientEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := registerAdmin(t, env, "root@example.com", "root")

	for _, body := range []map[string]interface{}{
		{"name": "Salt", "measurement_unit": "g"},
		{"name": "Salmon", "measurement_unit": "g"},
		{"name": "Milk", "measurement_unit": "ml"},
	} {
		w := performRequest(env.Router, http.MethodPost, "/api/v1/ingredients", adminToken, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Prefix search narrows the listing.
	w := performRequest(env.Router, http.MethodGet, "/api/v1/ingredients?name=Sal", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ingredients []models.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))
	require.Len(t, ingredients, 2)

	// Same name with a different unit is a distinct ingredient.
	w = performRequest(env.Router, http.MethodPost, "/api/v1/ingredients", adminToken,
		map[string]interface{}{"name": "Salt", "measurement_unit": "kg"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = performRequest(env.Router, http.MethodPost, "/api/v1/ingredients", adminToken,
		map[string]interface{}{"name": "Salt", "measurement_unit": "g"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
