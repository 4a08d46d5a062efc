package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/nutrition"
	"github.com/pulseplan/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password, username string, prefs *types.UserPreferences) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.UserProfile, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	CheckIn(ctx context.Context, userID uuid.UUID, today time.Time) (*types.CheckInResponse, error)
	GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]*types.ProfileHistory, error)
}

// IMealService defines the interface for meal operations
type IMealService interface {
	CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error)
	UpdateMeal(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMealRequest) (*models.Meal, error)
	DeleteMeal(ctx context.Context, userID, id uuid.UUID) error
	ListMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.Meal, error)
	SetCompletion(ctx context.Context, userID, id uuid.UUID, completed, skipped bool) (*models.Meal, error)
	SearchMeals(ctx context.Context, userID uuid.UUID, query string) ([]*models.Meal, error)
	AggregateDay(ctx context.Context, userID uuid.UUID, date time.Time) (nutrition.Totals, error)
	ReplacePlanMeals(ctx context.Context, userID uuid.UUID, from time.Time, meals []*models.Meal) error
}

// IWeightService defines the interface for weight log operations
type IWeightService interface {
	Upsert(ctx context.Context, userID uuid.UUID, date time.Time, weightKG float64) (*models.WeightLog, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.WeightLog, error)
}

// IPlanService defines the interface for AI plan generation
type IPlanService interface {
	GeneratePlan(ctx context.Context, req *PlanRequest) (*GeneratedPlan, error)
	SaveDraft(ctx context.Context, draft *PlanDraft) error
	GetDraft(ctx context.Context, id string) (*PlanDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// IVisionService defines the interface for food photo analysis
type IVisionService interface {
	AnalyzeMealPhoto(ctx context.Context, photo []byte, contentType string) (*MealScan, error)
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendFeedbackNotification(feedback *models.Feedback, user *models.User) error
	SendStreakLostEmail(user *models.User, previousStreak int) error
	SendWelcomeEmail(user *models.User) error
	SendEmail(to, subject, body string) error
}

// EmbeddingServiceInterface generates vectors for similarity search
type EmbeddingServiceInterface interface {
	GenerateEmbedding(text string) (pgvector.Vector, error)
}
