package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ValidationStatus string

const (
	ValidationStatusApproved ValidationStatus = "approved"
	ValidationStatusRejected ValidationStatus = "rejected"
)

// MealValidation is the recorded AI verdict for one schedule slot on one
// calendar date. Effectively immutable after creation; the unique index
// rejects a second submission for the same (schedule, date).
//
// ConfidenceScore and NutritionalMatch are stored as 0..1 ratios. The 0-100
// display values live only in the API payloads.
type MealValidation struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"patient_id"`
	ScheduleID       uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:udx_meal_validation_occurrence" json:"schedule_id"`
	MealDate         time.Time                   `gorm:"type:date;not null;uniqueIndex:udx_meal_validation_occurrence;index" json:"meal_date"`
	MealType         MealType                    `gorm:"type:varchar(20);not null" json:"meal_type"`
	ImageURL         string                      `gorm:"type:text" json:"image_url,omitempty"`
	ExpectedFoods    datatypes.JSONSlice[string] `json:"expected_foods"`
	DetectedFoods    datatypes.JSONSlice[string] `json:"detected_foods"`
	MissingFoods     datatypes.JSONSlice[string] `json:"missing_foods"`
	ValidationStatus ValidationStatus            `gorm:"type:varchar(20);not null;index" json:"validation_status"`
	ConfidenceScore  float64                     `gorm:"not null" json:"confidence_score"`
	AIFeedback       string                      `gorm:"type:text" json:"ai_feedback,omitempty"`
	NutritionalMatch float64                     `gorm:"not null" json:"nutritional_match"`
	CaloriesEstimated int                        `json:"calories_estimated,omitempty"`
	CreatedAt        time.Time                   `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Schedule MealSchedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
}

func (MealValidation) TableName() string {
	return "meal_validations"
}

func (v *MealValidation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *MealValidation) IsApproved() bool {
	return v.ValidationStatus == ValidationStatusApproved
}
