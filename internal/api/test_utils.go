package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealbook/backend/config"
	"github.com/mealbook/backend/internal/database"
	"github.com/mealbook/backend/internal/service"
	"github.com/mealbook/backend/internal/types"
)

// testEnv bundles the router with the services tests need to seed data.
type testEnv struct {
	Router         *gin.Engine
	DB             *gorm.DB
	AuthService    *service.AuthService
	UserService    *service.UserService
	CatalogService *service.CatalogService
}

// setupTestEnv wires the full handler graph against an in-memory
// database, mirroring the production route layout. Redis and S3 stay
// nil so rate limiting is a no-op and images go to a temp dir.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		MediaDir:  t.TempDir(),
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	emailService := service.NewEmailService(cfg)
	userService := service.NewUserService(db)
	catalogService := service.NewCatalogService(db)
	imageService := service.NewImageService(nil, cfg.MediaDir)
	recipeService := service.NewRecipeService(db, imageService)
	interactionService := service.NewInteractionService(db)

	router := gin.New()
	router.GET("/health", NewHealthHandler(nil))

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService, emailService).RegisterRoutes(v1, nil)
	NewUserHandler(userService, authService).RegisterRoutes(v1)
	NewTagHandler(catalogService, userService, authService).RegisterRoutes(v1)
	NewIngredientHandler(catalogService, userService, authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, interactionService, authService).RegisterRoutes(v1)

	return &testEnv{
		Router:         router,
		DB:             db,
		AuthService:    authService,
		UserService:    userService,
		CatalogService: catalogService,
	}
}

// registerUser creates an account through the auth service and returns
// the user ID with a valid bearer token.
func registerUser(t *testing.T, env *testEnv, email, username string) (uuid.UUID, string) {
	t.Helper()
	user, token, err := env.AuthService.Register(&types.RegisterRequest{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	})
	require.NoError(t, err)
	return user.ID, token
}

func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
