package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MealScheduleRequest struct {
	DayOfWeek      int      `json:"day_of_week" validate:"gte=0,lte=6"`
	MealType       string   `json:"meal_type" validate:"required,oneof=breakfast lunch snack dinner"`
	ScheduledTime  string   `json:"scheduled_time" validate:"required,datetime=15:04"`
	ExpectedFoods  []string `json:"expected_foods" validate:"required,min=1,dive,required"`
	PortionNotes   string   `json:"portion_notes"`
	CaloriesTarget int      `json:"calories_target" validate:"gte=0"`
}

type CreatePlanRequest struct {
	PatientID                  uuid.UUID             `json:"patient_id" validate:"required"`
	PlanName                   string                `json:"plan_name" validate:"required,min=2,max=255"`
	StartDate                  string                `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                    string                `json:"end_date" validate:"required,datetime=2006-01-02"`
	TargetCompliancePercentage int                   `json:"target_compliance_percentage" validate:"gte=0,lte=100"`
	Schedules                  []MealScheduleRequest `json:"schedules" validate:"required,min=1,dive"`
}

// Response DTOs

type MealScheduleResponse struct {
	ID             uuid.UUID `json:"id"`
	DayOfWeek      int       `json:"day_of_week"`
	MealType       string    `json:"meal_type"`
	ScheduledTime  string    `json:"scheduled_time"`
	ExpectedFoods  []string  `json:"expected_foods"`
	PortionNotes   string    `json:"portion_notes,omitempty"`
	CaloriesTarget int       `json:"calories_target,omitempty"`
}

type PlanResponse struct {
	ID                         uuid.UUID              `json:"id"`
	NutritionistID             uuid.UUID              `json:"nutritionist_id"`
	PatientID                  uuid.UUID              `json:"patient_id"`
	PlanName                   string                 `json:"plan_name"`
	StartDate                  string                 `json:"start_date"`
	EndDate                    string                 `json:"end_date"`
	TargetCompliancePercentage int                    `json:"target_compliance_percentage"`
	Status                     string                 `json:"status"`
	Schedules                  []MealScheduleResponse `json:"schedules,omitempty"`
	CreatedAt                  time.Time              `json:"created_at"`
	UpdatedAt                  time.Time              `json:"updated_at"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int            `json:"total"`
}
