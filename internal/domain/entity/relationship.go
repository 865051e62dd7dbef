package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionistPatient is the care relationship created when an invitation is
// accepted. Created once, never mutated.
type NutritionistPatient struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NutritionistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:udx_nutritionist_patient" json:"nutritionist_id"`
	PatientID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:udx_nutritionist_patient;index" json:"patient_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Nutritionist User `gorm:"foreignKey:NutritionistID" json:"nutritionist,omitempty"`
	Patient      User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (NutritionistPatient) TableName() string {
	return "nutritionist_patients"
}

func (r *NutritionistPatient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
