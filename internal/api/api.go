package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealbook/backend/internal/database"
	"github.com/mealbook/backend/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// NewHealthHandler reports API health, pinging the database when one is
// wired in.
func NewHealthHandler(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Mealbook API is running",
		})
	}
}

// respondError maps service errors onto the HTTP error taxonomy:
// validation and conflict errors are 400, authorization failures 403,
// missing entities 404, anything unexpected a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrSelfSubscribe),
		errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrNotSubscribed),
		errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrInvalidCookingTime),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnknownTag),
		errors.Is(err, service.ErrUnknownIngredient),
		errors.Is(err, service.ErrRepeatedTag),
		errors.Is(err, service.ErrRepeatedIngredient),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrNotFavorited),
		errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrNotInCart),
		errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = defaultPageSize

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
			if limit > maxPageSize {
				limit = maxPageSize
			}
		}
	}
	return page, limit
}

// paginated wraps list results in the envelope the frontend pages over.
func paginated(total int64, results interface{}) gin.H {
	return gin.H{
		"count":   total,
		"results": results,
	}
}
