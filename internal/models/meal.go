package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Meal is a single logged or plan-generated meal on a given date. Meals
// created by plan generation carry PlanGenerated=true so a regenerated plan
// can replace the still-pending ones wholesale.
type Meal struct {
	ID            uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID        uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Date          time.Time        `gorm:"type:date;not null;index" json:"date"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	MealType      string           `gorm:"size:20;not null" json:"meal_type"` // breakfast, lunch, dinner, snack
	Calories      int              `gorm:"not null;default:0" json:"calories"`
	Protein       float64          `gorm:"type:float" json:"protein"`
	Carbs         float64          `gorm:"type:float" json:"carbs"`
	Fat           float64          `gorm:"type:float" json:"fat"`
	Items         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Completed     bool             `gorm:"not null;default:false" json:"completed"`
	Skipped       bool             `gorm:"not null;default:false" json:"skipped"`
	PlanGenerated bool             `gorm:"not null;default:false" json:"plan_generated"`
	PhotoURL      string           `gorm:"size:255" json:"photo_url,omitempty"`
	Embedding     pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}
