package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/streak"
	"github.com/pulseplan/backend/internal/types"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService handles user profile operations, including the daily
// streak check-in.
type ProfileService struct {
	db           *gorm.DB
	emailService IEmailService
}

var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. emailService may
// be nil; streak-lost nudges are then skipped.
func NewProfileService(db *gorm.DB, emailService IEmailService) *ProfileService {
	return &ProfileService{
		db:           db,
		emailService: emailService,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the provided fields and records each change in the
// profile history log.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != profile.Username {
		s.recordChange(userID, "username", profile.Username, req.Username)
		profile.Username = req.Username
	}
	if req.Age != nil {
		s.recordChange(userID, "age", fmt.Sprint(intOrZero(profile.Age)), fmt.Sprint(*req.Age))
		profile.Age = req.Age
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.HeightCM != nil {
		profile.HeightCM = req.HeightCM
	}
	if req.WeightKG != nil {
		s.recordChange(userID, "weight_kg", fmt.Sprint(floatOrZero(profile.WeightKG)), fmt.Sprint(*req.WeightKG))
		profile.WeightKG = req.WeightKG
	}
	if req.TargetWeightKG != nil {
		profile.TargetWeightKG = req.TargetWeightKG
	}
	if req.ActivityLevel != nil {
		s.recordChange(userID, "activity_level", profile.ActivityLevel, *req.ActivityLevel)
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.Goal != nil {
		s.recordChange(userID, "goal", profile.Goal, *req.Goal)
		profile.Goal = *req.Goal
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// CheckIn evaluates streak continuity for today and persists the outcome.
//
// The write is a single conditional UPDATE guarded on last_active_date, so
// two sessions checking in concurrently cannot double-increment: only the
// first UPDATE matches the row, the loser re-reads the committed counters.
func (s *ProfileService) CheckIn(ctx context.Context, userID uuid.UUID, today time.Time) (*types.CheckInResponse, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	day := dateOnly(today)
	result := streak.Evaluate(profile.CurrentStreak, profile.LongestStreak, profile.LastActiveDate, day)
	if !result.Counted {
		return &types.CheckInResponse{
			CurrentStreak: result.CurrentStreak,
			LongestStreak: result.LongestStreak,
		}, nil
	}

	res := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("user_id = ? AND (last_active_date IS NULL OR last_active_date <> ?)", userID, day).
		Updates(map[string]interface{}{
			"current_streak":   result.CurrentStreak,
			"longest_streak":   result.LongestStreak,
			"last_active_date": day,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Another session counted today between our read and write. Return
		// the committed values rather than the ones we computed.
		committed, err := s.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &types.CheckInResponse{
			CurrentStreak: committed.CurrentStreak,
			LongestStreak: committed.LongestStreak,
		}, nil
	}

	resp := &types.CheckInResponse{
		CurrentStreak: result.CurrentStreak,
		LongestStreak: result.LongestStreak,
	}
	if result.Lost != nil {
		resp.StreakLost = true
		resp.PreviousStreak = result.Lost.PreviousStreak
		s.notifyStreakLost(ctx, userID, result.Lost.PreviousStreak)
	}
	return resp, nil
}

// GetProfileHistory retrieves the change history for a user's profile
func (s *ProfileService) GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]*types.ProfileHistory, error) {
	var history []models.ProfileHistory
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID.String()).Order("changed_at DESC").Find(&history).Error; err != nil {
		return nil, err
	}

	result := make([]*types.ProfileHistory, len(history))
	for i, h := range history {
		result[i] = &types.ProfileHistory{
			ID:        uuid.MustParse(h.UserID),
			UserID:    uuid.MustParse(h.UserID),
			Field:     h.Field,
			OldValue:  h.OldValue,
			NewValue:  h.NewValue,
			ChangedAt: h.ChangedAt,
			ChangedBy: h.ChangedBy,
		}
	}
	return result, nil
}

func (s *ProfileService) recordChange(userID uuid.UUID, field, oldValue, newValue string) {
	history := &models.ProfileHistory{
		UserID:    userID.String(),
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedAt: time.Now(),
		ChangedBy: userID.String(),
	}
	if err := s.db.Create(history).Error; err != nil {
		log.Printf("[ProfileService] failed to record profile change: %v", err)
	}
}

func (s *ProfileService) notifyStreakLost(ctx context.Context, userID uuid.UUID, previousStreak int) {
	if s.emailService == nil {
		return
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("[ProfileService] could not load user for streak-lost email: %v", err)
		return
	}
	go func() {
		if err := s.emailService.SendStreakLostEmail(&user, previousStreak); err != nil {
			log.Printf("[ProfileService] failed to send streak-lost email: %v", err)
		}
	}()
}

// dateOnly truncates t to midnight UTC so stored dates compare by calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
