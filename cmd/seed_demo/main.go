package main

import (
	"context"
	"log"
	"time"

	"github.com/pulseplan/backend/config"
	"github.com/pulseplan/backend/internal/database"
	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/types"
)

// Seeds a demo account with a profile, a day of meals and a short weight
// history, for local frontend development.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)

	user, err := authService.Register(ctx, "Demo User", "demo@pulseplan.app", "demo-password-123", "demo", &types.UserPreferences{
		DietaryPrefs: []string{"vegetarian"},
		Allergies:    []string{"peanuts"},
	})
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	age := 30
	gender := "male"
	height := 175.0
	weight := 70.0
	if err := db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
		"age":            age,
		"gender":         gender,
		"height_cm":      height,
		"weight_kg":      weight,
		"activity_level": "moderate",
		"goal":           "weight-loss",
	}).Error; err != nil {
		log.Fatalf("Failed to update demo profile: %v", err)
	}

	mealService := service.NewMealService(db, service.NewEmbeddingService())
	today := time.Now().UTC()
	meals := []*models.Meal{
		{UserID: user.ID, Date: today, Title: "Oatmeal with Berries", MealType: "breakfast", Calories: 350, Protein: 12, Carbs: 60, Fat: 8, Completed: true},
		{UserID: user.ID, Date: today, Title: "Grilled Halloumi Salad", MealType: "lunch", Calories: 520, Protein: 28, Carbs: 30, Fat: 32, Completed: true},
		{UserID: user.ID, Date: today, Title: "Lentil Curry", MealType: "dinner", Calories: 610, Protein: 26, Carbs: 80, Fat: 18},
	}
	for _, meal := range meals {
		if _, err := mealService.CreateMeal(ctx, meal); err != nil {
			log.Fatalf("Failed to seed meal %q: %v", meal.Title, err)
		}
	}

	weightService := service.NewWeightService(db)
	for i := 0; i < 5; i++ {
		day := today.AddDate(0, 0, -i)
		if _, err := weightService.Upsert(ctx, user.ID, day, weight+float64(i)*0.2); err != nil {
			log.Fatalf("Failed to seed weight log: %v", err)
		}
	}

	log.Printf("Seeded demo user %s (%s)", user.Email, user.ID)
}
