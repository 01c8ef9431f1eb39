package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbook/backend/internal/models"
	"github.com/mealbook/backend/internal/types"
)

// seedCatalog creates one tag and one ingredient for recipe payloads.
func seedCatalog(t *testing.T, env *testEnv) (*models.Tag, *models.Ingredient) {
	t.Helper()
	ctx := context.Background()
	tag, err := env.CatalogService.CreateTag(ctx, &types.CreateTagRequest{
		Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast",
	})
	require.NoError(t, err)
	ing, err := env.CatalogService.CreateIngredient(ctx, &types.CreateIngredientRequest{
		Name: "Sugar", MeasurementUnit: "g",
	})
	require.NoError(t, err)
	return tag, ing
}

func recipeBody(tag *models.Tag, ing *models.Ingredient, amount int) map[string]interface{} {
	return map[string]interface{}{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"image":        "http://example.com/pancakes.jpg",
		"cooking_time": 20,
		"tags":         []uint{tag.ID},
		"ingredients": []map[string]interface{}{
			{"id": ing.ID, "amount": amount},
		},
	}
}

func createRecipeViaAPI(t *testing.T, env *testEnv, token string, body map[string]interface{}) string {
	t.Helper()
	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["id"].(string)
}

func TestRecipeCreateRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", "", recipeBody(tag, ing, 10))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(env.Router, http.MethodPost, "/api/v1/recipes", "garbage-token", recipeBody(tag, ing, 10))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeCRUD(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)
	_, token := registerUser(t, env, "ada@example.com", "ada")

	id := createRecipeViaAPI(t, env, token, recipeBody(tag, ing, 10))

	// Anonymous read works and reports all-false flags.
	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Pancakes", body["name"])
	assert.Equal(t, false, body["is_favorited"])

	// List is paginated.
	w = performRequest(env.Router, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])

	// Owner update.
	update := recipeBody(tag, ing, 10)
	update["name"] = "Crepes"
	w = performRequest(env.Router, http.MethodPatch, "/api/v1/recipes/"+id, token, update)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Crepes", decodeBody(t, w)["name"])

	// Owner delete, then 404.
	w = performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeUpdateForbiddenForStrangers(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)
	_, ownerToken := registerUser(t, env, "ada@example.com", "ada")
	_, strangerToken := registerUser(t, env, "eve@example.com", "eve")

	id := createRecipeViaAPI(t, env, ownerToken, recipeBody(tag, ing, 10))

	w := performRequest(env.Router, http.MethodPatch, "/api/v1/recipes/"+id, strangerToken, recipeBody(tag, ing, 10))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(env.Router, http.MethodDelete, "/api/v1/recipes/"+id, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecipeCreateRejectsInvalidPayload(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)
	_, token := registerUser(t, env, "ada@example.com", "ada")

	body := recipeBody(tag, ing, 0)
	w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = recipeBody(tag, ing, 10)
	body["cooking_time"] = -5
	w = performRequest(env.Router, http.MethodPost, "/api/v1/recipes", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = recipeBody(tag, ing, 10)
	body["tags"] = []uint{9999}
	w = performRequest(env.Router, http.MethodPost, "/api/v1/recipes", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeInvalidIDIsBadRequest(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)
	_, ownerToken := registerUser(t, env, "ada@example.com", "ada")
	_, readerToken := registerUser(t, env, "grace@example.com", "grace")

	id := createRecipeViaAPI(t, env, ownerToken, recipeBody(tag, ing, 10))
	path := fmt.Sprintf("/api/v1/recipes/%s/favorite", id)

	w := performRequest(env.Router, http.MethodPost, path, readerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Pancakes", body["name"])
	assert.Equal(t, float64(20), body["cooking_time"])

	// Duplicate favorite is rejected.
	w = performRequest(env.Router, http.MethodPost, path, readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The flag shows up for the reader.
	w = performRequest(env.Router, http.MethodGet, "/api/v1/recipes/"+id, readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_favorited"])

	w = performRequest(env.Router, http.MethodDelete, path, readerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = performRequest(env.Router, http.MethodDelete, path, readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShoppingCartEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)
	_, token := registerUser(t, env, "ada@example.com", "ada")

	first := createRecipeViaAPI(t, env, token, recipeBody(tag, ing, 100))
	second := recipeBody(tag, ing, 50)
	second["name"] = "Tea"
	secondID := createRecipeViaAPI(t, env, token, second)

	for _, id := range []string{first, secondID} {
		w := performRequest(env.Router, http.MethodPost, "/api/v1/recipes/"+id+"/shopping_cart", token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Contains(t, w.Body.String(), "Sugar(g) - 150")

	// Download requires auth.
	w = performRequest(env.Router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeListFilterByTag(t *testing.T) {
	env := setupTestEnv(t)
	tag, ing := seedCatalog(t, env)
	dinner, err := env.CatalogService.CreateTag(context.Background(), &types.CreateTagRequest{
		Name: "Dinner", Color: "#8775D2", Slug: "dinner",
	})
	require.NoError(t, err)
	_, token := registerUser(t, env, "ada@example.com", "ada")

	createRecipeViaAPI(t, env, token, recipeBody(tag, ing, 10))
	stew := recipeBody(dinner, ing, 10)
	stew["name"] = "Stew"
	createRecipeViaAPI(t, env, token, stew)

	w := performRequest(env.Router, http.MethodGet, "/api/v1/recipes?tags=dinner", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "Stew", results[0].(map[string]interface{})["name"])
}
