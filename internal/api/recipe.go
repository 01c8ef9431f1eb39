package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealbook/backend/internal/middleware"
	"github.com/mealbook/backend/internal/service"
	"github.com/mealbook/backend/internal/types"
)

type RecipeHandler struct {
	recipeService      *service.RecipeService
	interactionService *service.InteractionService
	authService        middleware.TokenValidator
}

func NewRecipeHandler(recipeService *service.RecipeService, interactionService *service.InteractionService, authService middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipeService:      recipeService,
		interactionService: interactionService,
		authService:        authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.List)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.authService), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.Get)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.Create)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.Update)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.Update)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.Delete)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.Favorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.Unfavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := service.RecipeFilter{
		Tags:             c.QueryArray("tags"),
		IsFavorited:      boolQuery(c, "is_favorited"),
		IsInShoppingCart: boolQuery(c, "is_in_shopping_cart"),
		Query:            c.Query("q"),
		Page:             page,
		Limit:            limit,
	}
	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.Author = &id
	}

	results, total, err := h.recipeService.ListRecipes(c.Request.Context(), callerID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(total, results))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	userID, id, ok := h.interactionTarget(c)
	if !ok {
		return
	}

	compact, err := h.interactionService.Favorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, compact)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	userID, id, ok := h.interactionTarget(c)
	if !ok {
		return
	}

	if err := h.interactionService.Unfavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	userID, id, ok := h.interactionTarget(c)
	if !ok {
		return
	}

	compact, err := h.interactionService.AddToCart(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, compact)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	userID, id, ok := h.interactionTarget(c)
	if !ok {
		return
	}

	if err := h.interactionService.RemoveFromCart(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the caller's aggregated shopping list as
// plain text.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.interactionService.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.String(http.StatusOK, service.RenderShoppingList(items))
}

func (h *RecipeHandler) interactionTarget(c *gin.Context) (userID, id uuid.UUID, ok bool) {
	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}
	id, idOK := recipeID(c)
	if !idOK {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func boolQuery(c *gin.Context, key string) bool {
	v := c.Query(key)
	return v == "1" || v == "true"
}
