package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile carries the onboarding biometrics used for target derivation
// plus the streak counters. Biometric pointer fields are nil until the user
// completes the corresponding onboarding step.
type UserProfile struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username       string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Age            *int           `json:"age,omitempty"`
	Gender         *string        `gorm:"size:10" json:"gender,omitempty"` // male, female
	HeightCM       *float64       `json:"height_cm,omitempty"`
	WeightKG       *float64       `json:"weight_kg,omitempty"`
	TargetWeightKG *float64       `json:"target_weight_kg,omitempty"`
	ActivityLevel  string         `gorm:"size:20" json:"activity_level"` // sedentary, light, moderate, very
	Goal           string         `gorm:"size:20" json:"goal"`           // weight-loss, muscle, fit, flexibility
	CurrentStreak  int            `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak  int            `gorm:"not null;default:0" json:"longest_streak"`
	LastActiveDate *time.Time     `gorm:"type:date" json:"last_active_date,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
