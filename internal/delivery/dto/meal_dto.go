package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ValidateMealRequest struct {
	ScheduleID       uuid.UUID `json:"schedule_id" validate:"required"`
	MealDate         string    `json:"meal_date" validate:"required,datetime=2006-01-02"`
	ImageDescription string    `json:"image_description" validate:"omitempty,max=2000"`
	// ImageData optionally carries the photo as a base64 data URL; when set
	// the photo is stored and its URL persisted with the validation.
	ImageData string `json:"image_data"`
}

// Response DTOs

// ValidationVerdictResponse mirrors the analyzer contract: confidence and
// nutritional match on the 0-100 display scale.
type ValidationVerdictResponse struct {
	IsValid           bool     `json:"isValid"`
	Confidence        float64  `json:"confidence"`
	DetectedFoods     []string `json:"detectedFoods"`
	MissingFoods      []string `json:"missingFoods"`
	Feedback          string   `json:"feedback"`
	NutritionalMatch  float64  `json:"nutritionalMatch"`
	EstimatedCalories int      `json:"estimatedCalories"`
}

type MealValidationResponse struct {
	ID               uuid.UUID `json:"id"`
	ScheduleID       uuid.UUID `json:"schedule_id"`
	MealDate         string    `json:"meal_date"`
	MealType         string    `json:"meal_type"`
	ImageURL         string    `json:"image_url,omitempty"`
	ExpectedFoods    []string  `json:"expected_foods"`
	DetectedFoods    []string  `json:"detected_foods"`
	MissingFoods     []string  `json:"missing_foods"`
	ValidationStatus string    `json:"validation_status"`
	ConfidenceScore  float64   `json:"confidence_score"`
	AIFeedback       string    `json:"ai_feedback,omitempty"`
	NutritionalMatch float64   `json:"nutritional_match"`
	CaloriesEstimated int      `json:"calories_estimated,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ValidateMealResponse pairs the persisted record with the raw verdict so a
// client can show the feedback immediately.
type ValidateMealResponse struct {
	Validation MealValidationResponse    `json:"validation"`
	Verdict    ValidationVerdictResponse `json:"verdict"`
}

type MealValidationListResponse struct {
	Validations []MealValidationResponse `json:"validations"`
	Total       int                      `json:"total"`
}
