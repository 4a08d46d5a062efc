package models

import (
	"time"

	"github.com/google/uuid"
)

// WeightLog records one weight measurement per user per calendar date.
// Writes go through an upsert keyed on (user_id, logged_at).
type WeightLog struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_weight_user_date" json:"user_id"`
	LoggedAt  time.Time `gorm:"type:date;not null;uniqueIndex:idx_weight_user_date" json:"logged_at"`
	WeightKG  float64   `gorm:"not null" json:"weight_kg"`
}

func (WeightLog) TableName() string {
	return "weight_logs"
}
