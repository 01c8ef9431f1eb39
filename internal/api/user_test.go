package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := registerUser(t, env, "ada@example.com", "ada")

	w := performRequest(env.Router, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ada", body["username"])
	assert.Equal(t, "ada@example.com", body["email"])

	w = performRequest(env.Router, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserListAndGet(t *testing.T) {
	env := setupTestEnv(t)
	adaID, _ := registerUser(t, env, "ada@example.com", "ada")
	registerUser(t, env, "grace@example.com", "grace")

	w := performRequest(env.Router, http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	w = performRequest(env.Router, http.MethodGet, "/api/v1/users/"+adaID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada", decodeBody(t, w)["username"])

	w = performRequest(env.Router, http.MethodGet, "/api/v1/users/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	adaID, adaToken := registerUser(t, env, "ada@example.com", "ada")
	_, graceToken := registerUser(t, env, "grace@example.com", "grace")

	path := fmt.Sprintf("/api/v1/users/%s/subscribe", adaID)

	w := performRequest(env.Router, http.MethodPost, path, graceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ada", body["username"])
	assert.Equal(t, true, body["is_subscribed"])

	// Duplicate and self subscriptions are rejected.
	w = performRequest(env.Router, http.MethodPost, path, graceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = performRequest(env.Router, http.MethodPost, path, adaToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The subscriptions page lists ada for grace.
	w = performRequest(env.Router, http.MethodGet, "/api/v1/users/subscriptions", graceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])

	w = performRequest(env.Router, http.MethodDelete, path, graceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = performRequest(env.Router, http.MethodDelete, path, graceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
