package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/types"
)

// maxPhotoSize caps uploaded meal photos at 8 MiB.
const maxPhotoSize = 8 << 20

// MealHandler handles meal logging, completion, search and photo scans
type MealHandler struct {
	mealService   service.IMealService
	visionService service.IVisionService
}

// NewMealHandler creates a new MealHandler. visionService may be nil; the
// scan endpoint then reports the feature as unavailable.
func NewMealHandler(mealService service.IMealService, visionService service.IVisionService) *MealHandler {
	return &MealHandler{
		mealService:   mealService,
		visionService: visionService,
	}
}

// RegisterRoutes registers the meal routes. scanRateLimit may be nil; photo
// scans are then unthrottled.
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup, scanRateLimit gin.HandlerFunc) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.POST("", h.CreateMeal)
		meals.GET("/search", h.SearchMeals)
		if scanRateLimit != nil {
			meals.POST("/scan", scanRateLimit, h.ScanMeal)
		} else {
			meals.POST("/scan", h.ScanMeal)
		}
		meals.GET("/:id", h.GetMeal)
		meals.PUT("/:id", h.UpdateMeal)
		meals.DELETE("/:id", h.DeleteMeal)
		meals.POST("/:id/complete", h.CompleteMeal)
		meals.POST("/:id/skip", h.SkipMeal)
	}
}

// parseDate parses a YYYY-MM-DD query or body value.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// ListMeals returns the user's meals for the requested date (default today)
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date := time.Now().UTC()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := parseDate(dateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	meals, err := h.mealService.ListMealsForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, meals)
}

// CreateMeal logs a new meal
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	meal := &models.Meal{
		UserID:   userID,
		Date:     date,
		Title:    req.Title,
		MealType: req.MealType,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Items:    models.JSONBStringArray(req.Items),
		PhotoURL: req.PhotoURL,
	}

	created, err := h.mealService.CreateMeal(c.Request.Context(), meal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meal"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMeal returns one meal owned by the user
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal ID"})
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meal"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// UpdateMeal edits an existing meal
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal ID"})
		return
	}

	var req types.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.mealService.UpdateMeal(c.Request.Context(), userID, mealID, &req)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// DeleteMeal removes a meal
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal ID"})
		return
	}

	if err := h.mealService.DeleteMeal(c.Request.Context(), userID, mealID); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// CompleteMeal marks a meal as eaten, counting it toward the daily totals
func (h *MealHandler) CompleteMeal(c *gin.Context) {
	h.setCompletion(c, true, false)
}

// SkipMeal marks a meal as skipped; it contributes nothing to the totals
func (h *MealHandler) SkipMeal(c *gin.Context) {
	h.setCompletion(c, false, true)
}

func (h *MealHandler) setCompletion(c *gin.Context, completed, skipped bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal ID"})
		return
	}

	meal, err := h.mealService.SetCompletion(c.Request.Context(), userID, mealID, completed, skipped)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// SearchMeals searches the user's meal history
func (h *MealHandler) SearchMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	meals, err := h.mealService.SearchMeals(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search meals"})
		return
	}

	c.JSON(http.StatusOK, meals)
}

// ScanMeal analyzes an uploaded food photo and returns a meal prefill. The
// result is not persisted; the client confirms it via POST /meals.
func (h *MealHandler) ScanMeal(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	if h.visionService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo scanning is not available"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds the size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	scan, err := h.visionService.AnalyzeMealPhoto(c.Request.Context(), photo, contentType)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not analyze photo"})
		return
	}

	c.JSON(http.StatusOK, scan)
}
