package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseplan/backend/internal/media"
)

// ExerciseHandler serves demo video and thumbnail lookups for the exercise
// names that appear in generated workout plans.
type ExerciseHandler struct{}

// NewExerciseHandler creates a new ExerciseHandler
func NewExerciseHandler() *ExerciseHandler {
	return &ExerciseHandler{}
}

// RegisterRoutes registers the exercise routes
func (h *ExerciseHandler) RegisterRoutes(router *gin.RouterGroup) {
	exercises := router.Group("/exercises")
	{
		exercises.GET("/media", h.GetMedia)
	}
}

// GetMedia resolves an exercise name, however the plan spelled it, to its
// demo media. A miss is a 404, not a server error.
func (h *ExerciseHandler) GetMedia(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	entry := media.Resolve(name)
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no media found for exercise"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
