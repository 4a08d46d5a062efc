package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/types"
)

// WeightHandler handles weight log reads and upserts
type WeightHandler struct {
	weightService service.IWeightService
}

// NewWeightHandler creates a new WeightHandler
func NewWeightHandler(weightService service.IWeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

// RegisterRoutes registers the weight routes
func (h *WeightHandler) RegisterRoutes(router *gin.RouterGroup) {
	weights := router.Group("/weights")
	{
		weights.GET("", h.ListWeights)
		weights.PUT("/:date", h.UpsertWeight)
	}
}

// ListWeights returns the user's weight history, newest first
func (h *WeightHandler) ListWeights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, err := h.weightService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list weight logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// UpsertWeight writes the weight for the date in the path, replacing any
// previous entry for that date
func (h *WeightHandler) UpsertWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	var req types.UpsertWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.weightService.Upsert(c.Request.Context(), userID, date, req.WeightKG)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save weight"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
