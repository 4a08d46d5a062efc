package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/testhelpers"
)

func TestDashboardSummaryEndpoint(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	userID := seedUser(t, db)

	age := 30
	gender := "male"
	height := 175.0
	weight := 70.0
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"age":            age,
			"gender":         gender,
			"height_cm":      height,
			"weight_kg":      weight,
			"activity_level": "moderate",
			"goal":           "weight-loss",
			"current_streak": 4,
			"longest_streak": 9,
		}).Error)

	mealService := service.NewMealService(db, service.NewEmbeddingService())
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	breakfast, err := mealService.CreateMeal(ctx, &models.Meal{
		UserID: userID, Date: date, Title: "Oatmeal", MealType: "breakfast",
		Calories: 300, Protein: 12, Carbs: 50, Fat: 6,
	})
	require.NoError(t, err)
	_, err = mealService.SetCompletion(ctx, userID, breakfast.ID, true, false)
	require.NoError(t, err)

	_, err = mealService.CreateMeal(ctx, &models.Meal{
		UserID: userID, Date: date, Title: "Dinner", MealType: "dinner",
		Calories: 700, Protein: 35, Carbs: 60, Fat: 25,
	})
	require.NoError(t, err)

	handler := NewDashboardHandler(service.NewProfileService(db, nil), mealService)
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(authAs(userID))
	handler.RegisterRoutes(group)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/summary?date=2025-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp DashboardSummary
	decodeJSON(t, w, &resp)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, 2056, resp.Targets.Calories)
	assert.Equal(t, 300, resp.Consumed.Calories, "only the completed meal counts")
	assert.Equal(t, 12.0, resp.Consumed.Protein)
	assert.Equal(t, 4, resp.CurrentStreak)
	assert.Equal(t, 9, resp.LongestStreak)
}

func TestDashboardSummaryDefaultsForIncompleteProfile(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	userID := seedUser(t, db)

	handler := NewDashboardHandler(
		service.NewProfileService(db, nil),
		service.NewMealService(db, service.NewEmbeddingService()),
	)
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(authAs(userID))
	handler.RegisterRoutes(group)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DashboardSummary
	decodeJSON(t, w, &resp)
	assert.Equal(t, 2000, resp.Targets.Calories, "fallback targets for missing biometrics")
	assert.Equal(t, 120, resp.Targets.ProteinG)
	assert.Zero(t, resp.Consumed.Calories)
}

func TestDashboardSummaryBadDate(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	userID := seedUser(t, db)

	handler := NewDashboardHandler(
		service.NewProfileService(db, nil),
		service.NewMealService(db, service.NewEmbeddingService()),
	)
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(authAs(userID))
	handler.RegisterRoutes(group)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/summary?date=10-03-2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
