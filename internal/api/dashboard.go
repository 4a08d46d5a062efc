package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulseplan/backend/internal/nutrition"
	"github.com/pulseplan/backend/internal/service"
)

// DashboardHandler assembles the home-screen summary
type DashboardHandler struct {
	profileService service.IProfileService
	mealService    service.IMealService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(profileService service.IProfileService, mealService service.IMealService) *DashboardHandler {
	return &DashboardHandler{
		profileService: profileService,
		mealService:    mealService,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/summary", h.GetSummary)
	}
}

// DashboardSummary combines the user's targets, the day's consumed totals
// and the streak counters into one payload.
type DashboardSummary struct {
	Date          string            `json:"date"`
	Targets       nutrition.Targets `json:"targets"`
	Consumed      nutrition.Totals  `json:"consumed"`
	CurrentStreak int               `json:"current_streak"`
	LongestStreak int               `json:"longest_streak"`
}

// GetSummary returns the daily summary for the requested date (default today)
func (h *DashboardHandler) GetSummary(c *gin.Context) {
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

	consumed, err := h.mealService.AggregateDay(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate meals"})
		return
	}

	c.JSON(http.StatusOK, DashboardSummary{
		Date:          date.Format("2006-01-02"),
		Targets:       targets,
		Consumed:      consumed,
		CurrentStreak: profile.CurrentStreak,
		LongestStreak: profile.LongestStreak,
	})
}
