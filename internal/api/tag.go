package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mealbook/backend/internal/middleware"
	"github.com/mealbook/backend/internal/service"
	"github.com/mealbook/backend/internal/types"
)

type TagHandler struct {
	catalogService *service.CatalogService
	userService    *service.UserService
	authService    middleware.TokenValidator
}

func NewTagHandler(catalogService *service.CatalogService, userService *service.UserService, authService middleware.TokenValidator) *TagHandler {
	return &TagHandler{
		catalogService: catalogService,
		userService:    userService,
		authService:    authService,
	}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.List)
		tags.GET("/:id", h.Get)
		tags.POST("",
			middleware.AuthMiddleware(h.authService),
			middleware.AdminMiddleware(h.userService),
			h.Create)
	}
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.catalogService.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	tag, err := h.catalogService.GetTag(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req types.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.catalogService.CreateTag(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}
