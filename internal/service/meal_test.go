package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/testhelpers"
	"github.com/pulseplan/backend/internal/types"
)

func newTestMealService(t *testing.T) (*MealService, *gorm.DB) {
	db := testhelpers.SetupSQLiteTestDB(t)
	return NewMealService(db, NewEmbeddingService()), db
}

// testMeal derives the items from the title so that searches in one test
// meal do not accidentally hit the items of another.
func testMeal(userID uuid.UUID, date time.Time, title string, calories int) *models.Meal {
	return &models.Meal{
		UserID:   userID,
		Date:     date,
		Title:    title,
		MealType: "lunch",
		Calories: calories,
		Protein:  20,
		Carbs:    40,
		Fat:      10,
		Items:    models.JSONBStringArray(strings.Fields(strings.ToLower(title))),
	}
}

func TestCreateAndGetMeal(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	created, err := svc.CreateMeal(ctx, testMeal(userID, date, "Grilled Chicken Bowl", 550))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetMeal(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grilled Chicken Bowl", got.Title)
	assert.Equal(t, 550, got.Calories)
	assert.False(t, got.Completed)
	assert.False(t, got.Skipped)
}

func TestGetMealScopedToOwner(t *testing.T) {
	svc, db := newTestMealService(t)
	owner := createTestUserWithProfile(t, db)
	other := createTestUserWithProfile(t, db)
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, testMeal(owner, time.Now().UTC(), "Oatmeal", 300))
	require.NoError(t, err)

	_, err = svc.GetMeal(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestUpdateMeal(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, testMeal(userID, time.Now().UTC(), "Oatmeal", 300))
	require.NoError(t, err)

	calories := 350
	protein := 14.0
	updated, err := svc.UpdateMeal(ctx, userID, created.ID, &types.UpdateMealRequest{
		Title:    "Oatmeal with Berries",
		Calories: &calories,
		Protein:  &protein,
		Items:    []string{"oats", "blueberries"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Oatmeal with Berries", updated.Title)
	assert.Equal(t, 350, updated.Calories)
	assert.Equal(t, 14.0, updated.Protein)
	assert.Equal(t, models.JSONBStringArray{"oats", "blueberries"}, updated.Items)
	assert.Equal(t, 40.0, updated.Carbs, "untouched fields keep their values")
}

func TestDeleteMeal(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, testMeal(userID, time.Now().UTC(), "Oatmeal", 300))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMeal(ctx, userID, created.ID))

	_, err = svc.GetMeal(ctx, userID, created.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)

	assert.ErrorIs(t, svc.DeleteMeal(ctx, userID, created.ID), ErrMealNotFound)
}

func TestSetCompletionMutuallyExclusive(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, testMeal(userID, time.Now().UTC(), "Oatmeal", 300))
	require.NoError(t, err)

	meal, err := svc.SetCompletion(ctx, userID, created.ID, true, false)
	require.NoError(t, err)
	assert.True(t, meal.Completed)
	assert.False(t, meal.Skipped)

	meal, err = svc.SetCompletion(ctx, userID, created.ID, false, true)
	require.NoError(t, err)
	assert.False(t, meal.Completed)
	assert.True(t, meal.Skipped)

	got, err := svc.GetMeal(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.True(t, got.Skipped)
}

func TestAggregateDayCountsOnlyCompleted(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	breakfast, err := svc.CreateMeal(ctx, testMeal(userID, date, "Oatmeal", 300))
	require.NoError(t, err)
	lunch, err := svc.CreateMeal(ctx, testMeal(userID, date, "Chicken Bowl", 550))
	require.NoError(t, err)
	_, err = svc.CreateMeal(ctx, testMeal(userID, date, "Dinner", 700)) // never completed
	require.NoError(t, err)
	_, err = svc.CreateMeal(ctx, testMeal(userID, date.AddDate(0, 0, 1), "Tomorrow", 400))
	require.NoError(t, err)

	_, err = svc.SetCompletion(ctx, userID, breakfast.ID, true, false)
	require.NoError(t, err)
	_, err = svc.SetCompletion(ctx, userID, lunch.ID, true, false)
	require.NoError(t, err)

	totals, err := svc.AggregateDay(ctx, userID, date)
	require.NoError(t, err)
	assert.Equal(t, 850, totals.Calories)
	assert.Equal(t, 40.0, totals.Protein)
	assert.Equal(t, 80.0, totals.Carbs)
	assert.Equal(t, 20.0, totals.Fat)
}

func TestAggregateDayEmpty(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)

	totals, err := svc.AggregateDay(context.Background(), userID, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, totals.Calories)
}

func TestSearchMealsLikeFallback(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()
	date := time.Now().UTC()

	_, err := svc.CreateMeal(ctx, testMeal(userID, date, "Grilled Chicken Bowl", 550))
	require.NoError(t, err)
	_, err = svc.CreateMeal(ctx, testMeal(userID, date, "Veggie Pasta", 480))
	require.NoError(t, err)
	smoothie := testMeal(userID, date, "Morning Smoothie", 250)
	smoothie.Items = models.JSONBStringArray{"banana", "oats"}
	_, err = svc.CreateMeal(ctx, smoothie)
	require.NoError(t, err)

	results, err := svc.SearchMeals(ctx, userID, "chicken")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Grilled Chicken Bowl", results[0].Title)

	results, err = svc.SearchMeals(ctx, userID, "banana")
	require.NoError(t, err)
	require.Len(t, results, 1, "items match even when the title does not")
	assert.Equal(t, "Morning Smoothie", results[0].Title)

	results, err = svc.SearchMeals(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, results, 3, "empty query lists everything")
}

func TestReplacePlanMeals(t *testing.T) {
	svc, db := newTestMealService(t)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	// A manually logged meal and an older plan meal must both survive.
	manual := testMeal(userID, from, "Manual Lunch", 500)
	_, err := svc.CreateMeal(ctx, manual)
	require.NoError(t, err)

	oldPlan := testMeal(userID, from.AddDate(0, 0, -1), "Old Plan Breakfast", 350)
	oldPlan.PlanGenerated = true
	_, err = svc.CreateMeal(ctx, oldPlan)
	require.NoError(t, err)

	stale := testMeal(userID, from.AddDate(0, 0, 1), "Stale Plan Dinner", 600)
	stale.PlanGenerated = true
	_, err = svc.CreateMeal(ctx, stale)
	require.NoError(t, err)

	fresh := []*models.Meal{
		testMeal(userID, from, "Fresh Plan Breakfast", 320),
		testMeal(userID, from.AddDate(0, 0, 1), "Fresh Plan Lunch", 540),
	}
	require.NoError(t, svc.ReplacePlanMeals(ctx, userID, from, fresh))

	var all []models.Meal
	require.NoError(t, db.Where("user_id = ?", userID).Find(&all).Error)

	titles := make(map[string]bool, len(all))
	for _, m := range all {
		titles[m.Title] = true
	}
	assert.True(t, titles["Manual Lunch"])
	assert.True(t, titles["Old Plan Breakfast"])
	assert.False(t, titles["Stale Plan Dinner"], "stale future plan meals are replaced")
	assert.True(t, titles["Fresh Plan Breakfast"])
	assert.True(t, titles["Fresh Plan Lunch"])

	for _, m := range all {
		if m.Title == "Fresh Plan Breakfast" || m.Title == "Fresh Plan Lunch" {
			assert.True(t, m.PlanGenerated)
			assert.Equal(t, userID, m.UserID)
		}
	}
}
