package repository

import (
	"errors"

	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type relationshipRepository struct{}

func NewRelationshipRepository() domainRepo.RelationshipRepository {
	return &relationshipRepository{}
}

func (r *relationshipRepository) Create(db *gorm.DB, relationship *entity.NutritionistPatient) error {
	return db.Create(relationship).Error
}

func (r *relationshipRepository) FindByPair(db *gorm.DB, nutritionistID, patientID uuid.UUID) (*entity.NutritionistPatient, error) {
	var relationship entity.NutritionistPatient
	err := db.Where("nutritionist_id = ? AND patient_id = ?", nutritionistID, patientID).
		First(&relationship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relationship, nil
}

func (r *relationshipRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID) (*entity.NutritionistPatient, error) {
	var relationship entity.NutritionistPatient
	err := db.Preload("Nutritionist").Where("patient_id = ?", patientID).First(&relationship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relationship, nil
}

func (r *relationshipRepository) ListByNutritionist(db *gorm.DB, nutritionistID uuid.UUID) ([]entity.NutritionistPatient, error) {
	var relationships []entity.NutritionistPatient
	err := db.Where("nutritionist_id = ?", nutritionistID).Find(&relationships).Error
	return relationships, err
}
