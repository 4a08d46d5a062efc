package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/nutrition"
	"github.com/pulseplan/backend/internal/types"
)

var ErrMealNotFound = errors.New("meal not found")

// MealService handles meal logging, completion toggles, search and the
// wholesale plan-meal replacement that follows plan regeneration.
type MealService struct {
	db               *gorm.DB
	embeddingService EmbeddingServiceInterface
}

var _ IMealService = (*MealService)(nil)

func NewMealService(db *gorm.DB, embeddingService EmbeddingServiceInterface) *MealService {
	return &MealService{
		db:               db,
		embeddingService: embeddingService,
	}
}

// CreateMeal persists a meal with its title embedding for similarity search.
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	if s.embeddingService != nil {
		vec, err := s.embeddingService.GenerateEmbedding(meal.Title)
		if err == nil {
			meal.Embedding = vec
		}
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}
	return meal, nil
}

// GetMeal retrieves a meal by ID, scoped to its owner.
func (s *MealService) GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// UpdateMeal applies the provided fields to an existing meal.
func (s *MealService) UpdateMeal(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMealRequest) (*models.Meal, error) {
	meal, err := s.GetMeal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		meal.Title = req.Title
		if s.embeddingService != nil {
			if vec, err := s.embeddingService.GenerateEmbedding(meal.Title); err == nil {
				meal.Embedding = vec
			}
		}
	}
	if req.MealType != "" {
		meal.MealType = req.MealType
	}
	if req.Calories != nil {
		meal.Calories = *req.Calories
	}
	if req.Protein != nil {
		meal.Protein = *req.Protein
	}
	if req.Carbs != nil {
		meal.Carbs = *req.Carbs
	}
	if req.Fat != nil {
		meal.Fat = *req.Fat
	}
	if req.Items != nil {
		meal.Items = models.JSONBStringArray(req.Items)
	}

	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// DeleteMeal removes a meal owned by the user.
func (s *MealService) DeleteMeal(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Meal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}

// ListMealsForDate returns the user's meals for a single calendar date.
func (s *MealService) ListMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.Meal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, dateOnly(date)).
		Order("created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Meal, len(meals))
	for i := range meals {
		result[i] = &meals[i]
	}
	return result, nil
}

// SetCompletion marks a meal completed or skipped. The two flags are
// mutually exclusive; setting one clears the other.
func (s *MealService) SetCompletion(ctx context.Context, userID, id uuid.UUID, completed, skipped bool) (*models.Meal, error) {
	meal, err := s.GetMeal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	meal.Completed = completed
	meal.Skipped = skipped
	if err := s.db.WithContext(ctx).Model(meal).
		Updates(map[string]interface{}{"completed": completed, "skipped": skipped}).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// SearchMeals searches the user's meal history. On Postgres the results are
// ranked by embedding distance in addition to keyword matching; elsewhere
// it falls back to a plain LIKE query.
func (s *MealService) SearchMeals(ctx context.Context, userID uuid.UUID, query string) ([]*models.Meal, error) {
	var meals []models.Meal

	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		if s.db.Dialector.Name() == "postgres" && s.embeddingService != nil {
			vec, err := s.embeddingService.GenerateEmbedding(query)
			if err != nil {
				return nil, err
			}

			subQuery := s.db.Model(&models.Meal{}).
				Select("id, embedding <-> ? as similarity", vec).
				Where("user_id = ?", userID).
				Where("LOWER(title) LIKE ? OR LOWER(items::text) LIKE ?", like, like)

			dbQuery = dbQuery.Joins("JOIN (?) as search ON meals.id = search.id", subQuery).
				Order("search.similarity ASC")
		} else {
			dbQuery = dbQuery.Where("LOWER(title) LIKE ? OR LOWER(items) LIKE ?", like, like)
		}
	}

	if err := dbQuery.Find(&meals).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Meal, len(meals))
	for i := range meals {
		result[i] = &meals[i]
	}
	return result, nil
}

// AggregateDay sums the macros of the user's completed meals for a date.
func (s *MealService) AggregateDay(ctx context.Context, userID uuid.UUID, date time.Time) (nutrition.Totals, error) {
	meals, err := s.ListMealsForDate(ctx, userID, date)
	if err != nil {
		return nutrition.Totals{}, err
	}
	entries := make([]nutrition.MealEntry, len(meals))
	for i, m := range meals {
		entries[i] = nutrition.MealEntry{
			Calories:  m.Calories,
			Protein:   m.Protein,
			Carbs:     m.Carbs,
			Fat:       m.Fat,
			Completed: m.Completed,
		}
	}
	return nutrition.Aggregate(entries), nil
}

// ReplacePlanMeals deletes the user's plan-generated meals dated from the
// given day onward and inserts the freshly generated ones in a single
// transaction, so a regenerated plan never leaves stale future meals behind.
func (s *MealService) ReplacePlanMeals(ctx context.Context, userID uuid.UUID, from time.Time, meals []*models.Meal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND plan_generated = ? AND date >= ?", userID, true, dateOnly(from)).
			Delete(&models.Meal{}).Error; err != nil {
			return fmt.Errorf("failed to delete stale plan meals: %w", err)
		}
		for _, meal := range meals {
			if meal.ID == uuid.Nil {
				meal.ID = uuid.New()
			}
			meal.UserID = userID
			meal.PlanGenerated = true
			if s.embeddingService != nil {
				if vec, err := s.embeddingService.GenerateEmbedding(meal.Title); err == nil {
					meal.Embedding = vec
				}
			}
			if err := tx.Create(meal).Error; err != nil {
				return fmt.Errorf("failed to insert plan meal: %w", err)
			}
		}
		return nil
	})
}
