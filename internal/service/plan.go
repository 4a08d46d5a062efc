package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pulseplan/backend/internal/nutrition"
)

// Bounded auto-retry around plan generation: one retry after a short pause,
// then the failure surfaces to the caller's retry affordance.
const (
	planMaxAttempts  = 2
	planRetryBackoff = 2 * time.Second
)

// PlanRequest is the structured profile payload sent to the AI service.
type PlanRequest struct {
	UserID        string            `json:"user_id"`
	Age           *int              `json:"age,omitempty"`
	Gender        *string           `json:"gender,omitempty"`
	HeightCM      *float64          `json:"height_cm,omitempty"`
	WeightKG      *float64          `json:"weight_kg,omitempty"`
	ActivityLevel string            `json:"activity_level"`
	Goal          string            `json:"goal"`
	Targets       nutrition.Targets `json:"targets"`
	DietaryPrefs  []string          `json:"dietary_prefs"`
	Allergens     []string          `json:"allergens"`
	StartDate     string            `json:"start_date"`
	Days          int               `json:"days"`
	Notes         string            `json:"notes,omitempty"`
}

// PlanMeal is one meal of the generated nutrition plan. Day is a 1-based
// offset from the plan's start date.
type PlanMeal struct {
	Day      int      `json:"day"`
	MealType string   `json:"meal_type"`
	Title    string   `json:"title"`
	Calories int      `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Items    []string `json:"items"`
}

// WorkoutDay is one entry of the generated weekly workout schedule.
type WorkoutDay struct {
	Day       string   `json:"day"`
	Focus     string   `json:"focus"`
	Exercises []string `json:"exercises"`
}

// GeneratedPlan is the parsed AI response.
type GeneratedPlan struct {
	NutritionPlan struct {
		Meals []PlanMeal `json:"meals"`
	} `json:"nutrition_plan"`
	WorkoutPlan struct {
		WeeklySchedule []WorkoutDay `json:"weekly_schedule"`
	} `json:"workout_plan"`
}

// PlanDraft is a generated plan parked in Redis until the user accepts it.
type PlanDraft struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	UserID    string        `json:"user_id"`
	Plan      GeneratedPlan `json:"plan"`
}

// PlanService generates diet and workout plans via a chat-completions API
// and caches drafts in Redis.
type PlanService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

var _ IPlanService = (*PlanService)(nil)

// NewPlanService creates a new PlanService instance
func NewPlanService() (*PlanService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})

	return &PlanService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 60 * time.Second},
		redis:  redisClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

const planSystemPrompt = `You are a certified nutritionist and personal trainer. Given a user profile, produce a combined diet and workout plan as JSON with the following structure:
{
    "nutrition_plan": {
        "meals": [
            {"day": 1, "meal_type": "breakfast", "title": "Oatmeal with Berries", "calories": 350, "protein": 12, "carbs": 60, "fat": 8, "items": ["1 cup oats", "1/2 cup blueberries"]}
        ]
    },
    "workout_plan": {
        "weekly_schedule": [
            {"day": "Monday", "focus": "Upper Body", "exercises": ["Push-Up", "Seated Shoulder Press", "Lat Pulldown"]}
        ]
    }
}

Rules:
- meal_type must be one of: breakfast, lunch, dinner, snack.
- Provide breakfast, lunch, dinner and one snack for every requested day.
- Daily totals should land close to the user's calorie and macro targets.
- calories must be an integer; protein, carbs and fat must be numbers in grams.
- Respect the listed dietary preferences and never use the listed allergens.`

// GeneratePlan calls the AI service with the structured profile payload,
// retrying once on failure before giving up.
func (s *PlanService) GeneratePlan(ctx context.Context, req *PlanRequest) (*GeneratedPlan, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= planMaxAttempts; attempt++ {
		plan, err := s.generateAttempt(ctx, string(payload))
		if err == nil {
			return plan, nil
		}
		lastErr = err
		log.Printf("[PlanService] attempt %d/%d failed: %v", attempt, planMaxAttempts, err)
		if attempt < planMaxAttempts {
			select {
			case <-time.After(planRetryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("plan generation failed after %d attempts: %w", planMaxAttempts, lastErr)
}

func (s *PlanService) generateAttempt(ctx context.Context, profileJSON string) (*GeneratedPlan, error) {
	messages := []Message{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: "Generate a plan for this profile:\n" + profileJSON},
	}

	reqBody := Request{
		Model:    "deepseek-chat",
		Messages: messages,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if len(plan.NutritionPlan.Meals) == 0 {
		return nil, fmt.Errorf("plan contains no meals")
	}

	return &plan, nil
}

// SaveDraft saves a plan draft to Redis
func (s *PlanService) SaveDraft(ctx context.Context, draft *PlanDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := fmt.Sprintf("plan:draft:%s", draft.ID)
	if err := s.redis.Set(ctx, key, data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a plan draft from Redis
func (s *PlanService) GetDraft(ctx context.Context, id string) (*PlanDraft, error) {
	key := fmt.Sprintf("plan:draft:%s", id)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft PlanDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a plan draft from Redis
func (s *PlanService) DeleteDraft(ctx context.Context, id string) error {
	key := fmt.Sprintf("plan:draft:%s", id)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}

	return nil
}
