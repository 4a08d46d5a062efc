package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseplan/backend/internal/nutrition"
)

func completionResponse(t *testing.T, plan GeneratedPlan) []byte {
	t.Helper()

	content, err := json.Marshal(plan)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": string(content)}},
		},
	})
	require.NoError(t, err)
	return body
}

func samplePlan() GeneratedPlan {
	var plan GeneratedPlan
	plan.NutritionPlan.Meals = []PlanMeal{
		{Day: 1, MealType: "breakfast", Title: "Oatmeal with Berries",
			Calories: 350, Protein: 12, Carbs: 60, Fat: 8,
			Items: []string{"1 cup oats", "1/2 cup blueberries"}},
		{Day: 1, MealType: "lunch", Title: "Grilled Chicken Bowl",
			Calories: 550, Protein: 40, Carbs: 55, Fat: 15},
	}
	plan.WorkoutPlan.WeeklySchedule = []WorkoutDay{
		{Day: "Monday", Focus: "Upper Body", Exercises: []string{"Push-Up", "Seated Shoulder Press"}},
	}
	return plan
}

func newTestPlanService(t *testing.T, handler http.HandlerFunc) *PlanService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_API_URL", server.URL)

	svc, err := NewPlanService()
	require.NoError(t, err)
	return svc
}

func samplePlanRequest() *PlanRequest {
	return &PlanRequest{
		UserID:        "user-1",
		ActivityLevel: "moderate",
		Goal:          "weight-loss",
		Targets:       nutrition.Targets{Calories: 2056, ProteinG: 154, CarbsG: 206, FatG: 69},
		StartDate:     "2025-03-10",
		Days:          7,
	}
}

func TestGeneratePlan(t *testing.T) {
	var authHeader string
	svc := newTestPlanService(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write(completionResponse(t, samplePlan()))
	})

	plan, err := svc.GeneratePlan(context.Background(), samplePlanRequest())
	require.NoError(t, err)
	require.Len(t, plan.NutritionPlan.Meals, 2)
	assert.Equal(t, "Oatmeal with Berries", plan.NutritionPlan.Meals[0].Title)
	assert.Len(t, plan.WorkoutPlan.WeeklySchedule, 1)
	assert.Equal(t, "Bearer test-key", authHeader)
}

func TestGeneratePlanRetriesOnce(t *testing.T) {
	var calls atomic.Int32
	svc := newTestPlanService(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Write(completionResponse(t, samplePlan()))
	})

	plan, err := svc.GeneratePlan(context.Background(), samplePlanRequest())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.NotEmpty(t, plan.NutritionPlan.Meals)
}

func TestGeneratePlanRejectsEmptyPlan(t *testing.T) {
	svc := newTestPlanService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(t, GeneratedPlan{}))
	})

	_, err := svc.GeneratePlan(context.Background(), samplePlanRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no meals")
}

func TestGeneratePlanHonorsContextCancel(t *testing.T) {
	svc := newTestPlanService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GeneratePlan(ctx, samplePlanRequest())
	require.Error(t, err)
}

func TestNewPlanServiceRequiresKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY_FILE", "")

	_, err := NewPlanService()
	assert.Error(t, err)
}
