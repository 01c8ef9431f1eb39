package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mealbook/backend/internal/middleware"
	"github.com/mealbook/backend/internal/service"
	"github.com/mealbook/backend/internal/types"
)

type IngredientHandler struct {
	catalogService *service.CatalogService
	userService    *service.UserService
	authService    middleware.TokenValidator
}

func NewIngredientHandler(catalogService *service.CatalogService, userService *service.UserService, authService middleware.TokenValidator) *IngredientHandler {
	return &IngredientHandler{
		catalogService: catalogService,
		userService:    userService,
		authService:    authService,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.List)
		ingredients.GET("/:id", h.Get)
		ingredients.POST("",
			middleware.AuthMiddleware(h.authService),
			middleware.AdminMiddleware(h.userService),
			h.Create)
	}
}

// List returns ingredients, restricted to a name prefix when the search
// box sends one.
func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.catalogService.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ingredient, err := h.catalogService.GetIngredient(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req types.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.catalogService.CreateIngredient(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}
