package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeSnack     MealType = "snack"
	MealTypeDinner    MealType = "dinner"
)

// MealSchedule is one prescribed meal slot of a plan: a weekday, a meal type,
// a target time and the foods the patient is expected to eat.
type MealSchedule struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	NutritionPlanID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"nutrition_plan_id"`
	DayOfWeek       int                         `gorm:"not null" json:"day_of_week"`
	MealType        MealType                    `gorm:"type:varchar(20);not null" json:"meal_type"`
	ScheduledTime   string                      `gorm:"type:varchar(5);not null" json:"scheduled_time"`
	ExpectedFoods   datatypes.JSONSlice[string] `json:"expected_foods"`
	PortionNotes    string                      `gorm:"type:text" json:"portion_notes,omitempty"`
	CaloriesTarget  int                         `json:"calories_target,omitempty"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Plan NutritionPlan `gorm:"foreignKey:NutritionPlanID" json:"plan,omitempty"`
}

func (MealSchedule) TableName() string {
	return "daily_meal_schedules"
}

func (s *MealSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsValidMealType reports whether t is one of the four known meal types.
func IsValidMealType(t MealType) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeDinner:
		return true
	}
	return false
}
