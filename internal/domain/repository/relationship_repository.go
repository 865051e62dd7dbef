package repository

import (
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RelationshipRepository interface {
	Create(db *gorm.DB, relationship *entity.NutritionistPatient) error
	FindByPair(db *gorm.DB, nutritionistID, patientID uuid.UUID) (*entity.NutritionistPatient, error)
	FindByPatient(db *gorm.DB, patientID uuid.UUID) (*entity.NutritionistPatient, error)
	ListByNutritionist(db *gorm.DB, nutritionistID uuid.UUID) ([]entity.NutritionistPatient, error)
}
