package repository

import (
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NutritionPlanRepository interface {
	Create(db *gorm.DB, plan *entity.NutritionPlan) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.NutritionPlan, error)
	ListByNutritionist(db *gorm.DB, nutritionistID uuid.UUID) ([]entity.NutritionPlan, error)
	ListByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.NutritionPlan, error)
	ListActiveByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.NutritionPlan, error)
}
