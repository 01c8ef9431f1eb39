package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.Router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":      "ada@example.com",
		"username":   "ada",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	// Same email cannot register twice.
	w = performRequest(env.Router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":      "ada@example.com",
		"username":   "ada2",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"malformed email", map[string]interface{}{
			"email": "not-an-email", "username": "ada",
			"first_name": "Ada", "last_name": "L", "password": "password123",
		}},
		{"short password", map[string]interface{}{
			"email": "ada@example.com", "username": "ada",
			"first_name": "Ada", "last_name": "L", "password": "short",
		}},
		{"missing username", map[string]interface{}{
			"email": "ada@example.com",
			"first_name": "Ada", "last_name": "L", "password": "password123",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(env.Router, http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "ada@example.com", "ada")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = performRequest(env.Router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
