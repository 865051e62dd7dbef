package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusArchived PlanStatus = "archived"
)

// NutritionPlan is a dated meal plan a nutritionist prescribes to a patient.
type NutritionPlan struct {
	ID                         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	NutritionistID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"nutritionist_id"`
	PatientID                  uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	PlanName                   string     `gorm:"type:varchar(255);not null" json:"plan_name"`
	StartDate                  time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate                    time.Time  `gorm:"type:date;not null" json:"end_date"`
	TargetCompliancePercentage int        `gorm:"not null;default:80" json:"target_compliance_percentage"`
	Status                     PlanStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt                  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Schedules []MealSchedule `gorm:"foreignKey:NutritionPlanID" json:"schedules,omitempty"`
}

func (NutritionPlan) TableName() string {
	return "nutrition_plans"
}

func (p *NutritionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
