package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=8"`
	Username string           `json:"username" binding:"required,max=50"`
	Prefs    *UserPreferences `json:"preferences,omitempty"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserPreferences carries dietary preferences and allergens collected during
// the onboarding quiz; both feed the plan-generation prompt.
type UserPreferences struct {
	DietaryPrefs []string `json:"dietary_prefs"`
	Allergies    []string `json:"allergies"`
}

// UpdateProfileRequest represents a request to update a user's profile.
// Pointer fields are only applied when present.
type UpdateProfileRequest struct {
	Username       string   `json:"username,omitempty"`
	Age            *int     `json:"age,omitempty" binding:"omitempty,gte=13,lte=120"`
	Gender         *string  `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	HeightCM       *float64 `json:"height_cm,omitempty" binding:"omitempty,gt=0"`
	WeightKG       *float64 `json:"weight_kg,omitempty" binding:"omitempty,gt=0"`
	TargetWeightKG *float64 `json:"target_weight_kg,omitempty" binding:"omitempty,gt=0"`
	ActivityLevel  *string  `json:"activity_level,omitempty" binding:"omitempty,oneof=sedentary light moderate very"`
	Goal           *string  `json:"goal,omitempty" binding:"omitempty,oneof=weight-loss muscle fit flexibility"`
}

// CreateMealRequest represents the request body for logging a meal
type CreateMealRequest struct {
	Date     string   `json:"date" binding:"required"` // YYYY-MM-DD
	Title    string   `json:"title" binding:"required,max=255"`
	MealType string   `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Calories int      `json:"calories" binding:"gte=0"`
	Protein  float64  `json:"protein" binding:"gte=0"`
	Carbs    float64  `json:"carbs" binding:"gte=0"`
	Fat      float64  `json:"fat" binding:"gte=0"`
	Items    []string `json:"items"`
	PhotoURL string   `json:"photo_url"`
}

// UpdateMealRequest represents the request body for editing a meal
type UpdateMealRequest struct {
	Title    string   `json:"title"`
	MealType string   `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Calories *int     `json:"calories" binding:"omitempty,gte=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,gte=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,gte=0"`
	Fat      *float64 `json:"fat" binding:"omitempty,gte=0"`
	Items    []string `json:"items"`
}

// UpsertWeightRequest represents the request body for a weight log upsert
type UpsertWeightRequest struct {
	WeightKG float64 `json:"weight_kg" binding:"required,gt=0"`
}

// GeneratePlanRequest represents the request body for AI plan generation
type GeneratePlanRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	Days      int    `json:"days" binding:"omitempty,gte=1,lte=14"`
	Notes     string `json:"notes" binding:"max=500"`
}

// CheckInResponse is returned by the daily streak check-in
type CheckInResponse struct {
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	StreakLost     bool `json:"streak_lost"`
	PreviousStreak int  `json:"previous_streak,omitempty"`
}

// Feedback API types
type CreateFeedbackRequest struct {
	Type        string `json:"type" binding:"required,oneof=bug feature general"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
	UserAgent   string `json:"user_agent"`
}

type FeedbackResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	UserAgent   string     `json:"user_agent,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
}

// ProfileHistory represents one entry of the profile change log
type ProfileHistory struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}
