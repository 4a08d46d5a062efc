package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulseplan/backend/internal/models"
)

// WeightService handles weight log upserts. The (user_id, logged_at) unique
// index is the only concurrency control: a second write for the same day
// overwrites the first instead of creating a duplicate row.
type WeightService struct {
	db *gorm.DB
}

var _ IWeightService = (*WeightService)(nil)

func NewWeightService(db *gorm.DB) *WeightService {
	return &WeightService{db: db}
}

// Upsert writes the weight for the given calendar date, replacing any
// existing entry for that date.
func (s *WeightService) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, weightKG float64) (*models.WeightLog, error) {
	entry := models.WeightLog{
		ID:       uuid.New(),
		UserID:   userID,
		LoggedAt: dateOnly(date),
		WeightKG: weightKG,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "logged_at"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight_kg", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the committed row, not our candidate ID
	// when the upsert hit an existing entry.
	var committed models.WeightLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at = ?", userID, dateOnly(date)).
		First(&committed).Error; err != nil {
		return nil, err
	}
	return &committed, nil
}

// List returns the user's weight history, newest first.
func (s *WeightService) List(ctx context.Context, userID uuid.UUID) ([]*models.WeightLog, error) {
	var logs []models.WeightLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	result := make([]*models.WeightLog, len(logs))
	for i := range logs {
		result[i] = &logs[i]
	}
	return result, nil
}
