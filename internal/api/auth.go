package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbook/backend/internal/middleware"
	"github.com/mealbook/backend/internal/service"
	"github.com/mealbook/backend/internal/types"
)

type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
}

func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	auth := router.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.emailService.SendWelcomeEmail(user); err != nil {
		log.Printf("[AuthHandler] welcome email for %s failed: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
