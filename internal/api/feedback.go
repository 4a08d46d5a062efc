package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/types"
)

// FeedbackHandler handles user feedback submissions
type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// RegisterRoutes registers the feedback routes
func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.POST("", h.CreateFeedback)
		feedback.GET("/:id", h.GetFeedback)
	}
}

// CreateFeedback creates a new feedback submission. Anonymous submissions
// are allowed; the user ID is attached when the request is authenticated.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}

	var userID *uuid.UUID
	if value, exists := c.Get("user_id"); exists {
		if uid, ok := value.(uuid.UUID); ok {
			userID = &uid
		}
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create feedback"})
		return
	}

	c.JSON(http.StatusCreated, h.feedbackToResponse(feedback))
}

// GetFeedback gets a specific feedback item
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), feedbackID)
	if err != nil {
		if err.Error() == "feedback not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get feedback"})
		return
	}

	c.JSON(http.StatusOK, h.feedbackToResponse(feedback))
}

func (h *FeedbackHandler) feedbackToResponse(feedback *models.Feedback) types.FeedbackResponse {
	return types.FeedbackResponse{
		ID:          feedback.ID,
		Type:        feedback.Type,
		Title:       feedback.Title,
		Description: feedback.Description,
		Status:      feedback.Status,
		UserAgent:   feedback.UserAgent,
		CreatedAt:   feedback.CreatedAt,
		UserID:      feedback.UserID,
	}
}
