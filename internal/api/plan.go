package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/nutrition"
	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/types"
)

// defaultPlanDays is used when the request does not say how long the plan
// should run.
const defaultPlanDays = 7

// PlanHandler handles AI plan generation and draft retrieval
type PlanHandler struct {
	planService    service.IPlanService
	profileService service.IProfileService
	mealService    service.IMealService
	db             *gorm.DB
}

// NewPlanHandler creates a new PlanHandler. planService may be nil when the
// AI backend is not configured; plan routes then answer 503.
func NewPlanHandler(planService service.IPlanService, profileService service.IProfileService, mealService service.IMealService, db *gorm.DB) *PlanHandler {
	return &PlanHandler{
		planService:    planService,
		profileService: profileService,
		mealService:    mealService,
		db:             db,
	}
}

// RegisterRoutes registers the plan routes. rateLimit guards generation; it
// may be nil in tests.
func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	plans := router.Group("/plans")
	{
		if rateLimit != nil {
			plans.POST("/generate", rateLimit, h.GeneratePlan)
		} else {
			plans.POST("/generate", h.GeneratePlan)
		}
		plans.GET("/drafts/:id", h.GetDraft)
		plans.DELETE("/drafts/:id", h.DeleteDraft)
	}
}

// GeneratePlan builds the profile payload, calls the AI service and replaces
// the user's future plan meals with the generated ones.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.planService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "plan generation is not available"})
		return
	}

	var req types.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	days := req.Days
	if days == 0 {
		days = defaultPlanDays
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	targets := nutrition.ComputeTargets(nutrition.Profile{
		Age:           profile.Age,
		Gender:        profile.Gender,
		HeightCM:      profile.HeightCM,
		WeightKG:      profile.WeightKG,
		ActivityLevel: profile.ActivityLevel,
		Goal:          profile.Goal,
	})

	planReq := &service.PlanRequest{
		UserID:        userID.String(),
		Age:           profile.Age,
		Gender:        profile.Gender,
		HeightCM:      profile.HeightCM,
		WeightKG:      profile.WeightKG,
		ActivityLevel: profile.ActivityLevel,
		Goal:          profile.Goal,
		Targets:       targets,
		DietaryPrefs:  h.loadDietaryPrefs(c, userID),
		Allergens:     h.loadAllergens(c, userID),
		StartDate:     req.StartDate,
		Days:          days,
		Notes:         req.Notes,
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), planReq)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "plan generation failed, please try again"})
		return
	}

	meals := make([]*models.Meal, 0, len(plan.NutritionPlan.Meals))
	for _, pm := range plan.NutritionPlan.Meals {
		offset := pm.Day - 1
		if offset < 0 {
			offset = 0
		}
		meals = append(meals, &models.Meal{
			Date:     startDate.AddDate(0, 0, offset),
			Title:    pm.Title,
			MealType: pm.MealType,
			Calories: pm.Calories,
			Protein:  pm.Protein,
			Carbs:    pm.Carbs,
			Fat:      pm.Fat,
			Items:    models.JSONBStringArray(pm.Items),
		})
	}

	if err := h.mealService.ReplacePlanMeals(c.Request.Context(), userID, startDate, meals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save plan meals"})
		return
	}

	draft := &service.PlanDraft{UserID: userID.String(), Plan: *plan}
	if err := h.planService.SaveDraft(c.Request.Context(), draft); err != nil {
		// The plan is already persisted as meals; a draft failure only costs
		// the client the cached copy.
		c.JSON(http.StatusOK, gin.H{"plan": plan})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan, "draft_id": draft.ID})
}

// GetDraft returns a cached plan draft
func (h *PlanHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.planService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "plan drafts are not available"})
		return
	}

	draft, err := h.planService.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	if draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft discards a cached plan draft
func (h *PlanHandler) DeleteDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.planService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "plan drafts are not available"})
		return
	}

	draft, err := h.planService.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	if err := h.planService.DeleteDraft(c.Request.Context(), draft.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft deleted"})
}

func (h *PlanHandler) loadDietaryPrefs(c *gin.Context, userID interface{}) []string {
	var prefs []models.DietaryPreference
	if err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		return nil
	}
	names := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if p.PreferenceType == "custom" && p.CustomName != "" {
			names = append(names, p.CustomName)
			continue
		}
		names = append(names, p.PreferenceType)
	}
	return names
}

func (h *PlanHandler) loadAllergens(c *gin.Context, userID interface{}) []string {
	var allergens []models.Allergen
	if err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Find(&allergens).Error; err != nil {
		return nil
	}
	names := make([]string, 0, len(allergens))
	for _, a := range allergens {
		names = append(names, a.AllergenName)
	}
	return names
}
