package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealbook/backend/config"
	"github.com/mealbook/backend/internal/api"
	"github.com/mealbook/backend/internal/database"
	"github.com/mealbook/backend/internal/middleware"
	"github.com/mealbook/backend/internal/service"
)

// SetupRouter builds the service graph and configures the application
// routes. sqlDB and redisClient may be nil (health then skips the DB ping
// and auth endpoints run unthrottled).
func SetupRouter(db *gorm.DB, sqlDB *database.DB, redisClient *redis.Client, s3cfg *config.S3Config, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", api.NewHealthHandler(sqlDB))

	// Services
	authService := service.NewAuthService(db, cfg.JWTSecret)
	emailService := service.NewEmailService(cfg)
	userService := service.NewUserService(db)
	catalogService := service.NewCatalogService(db)
	imageService := service.NewImageService(s3cfg, cfg.MediaDir)
	recipeService := service.NewRecipeService(db, imageService)
	interactionService := service.NewInteractionService(db)

	var authLimiter *middleware.RateLimiter
	if redisClient != nil {
		authLimiter = middleware.NewAuthRateLimiter(redisClient)
	}

	// Handlers
	authHandler := api.NewAuthHandler(authService, emailService)
	userHandler := api.NewUserHandler(userService, authService)
	tagHandler := api.NewTagHandler(catalogService, userService, authService)
	ingredientHandler := api.NewIngredientHandler(catalogService, userService, authService)
	recipeHandler := api.NewRecipeHandler(recipeService, interactionService, authService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1, authLimiter)
		userHandler.RegisterRoutes(v1)
		tagHandler.RegisterRoutes(v1)
		ingredientHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}

	// Locally stored recipe images
	if cfg.S3Bucket == "" && cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	return router
}
