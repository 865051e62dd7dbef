package repository

import (
	"errors"

	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type nutritionPlanRepository struct{}

func NewNutritionPlanRepository() domainRepo.NutritionPlanRepository {
	return &nutritionPlanRepository{}
}

func (r *nutritionPlanRepository) Create(db *gorm.DB, plan *entity.NutritionPlan) error {
	return db.Create(plan).Error
}

func (r *nutritionPlanRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.NutritionPlan, error) {
	var plan entity.NutritionPlan
	err := db.Preload("Schedules").Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *nutritionPlanRepository) ListByNutritionist(db *gorm.DB, nutritionistID uuid.UUID) ([]entity.NutritionPlan, error) {
	var plans []entity.NutritionPlan
	err := db.Where("nutritionist_id = ?", nutritionistID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *nutritionPlanRepository) ListByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.NutritionPlan, error) {
	var plans []entity.NutritionPlan
	err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *nutritionPlanRepository) ListActiveByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.NutritionPlan, error) {
	var plans []entity.NutritionPlan
	err := db.Preload("Schedules").
		Where("patient_id = ? AND status = ?", patientID, entity.PlanStatusActive).
		Find(&plans).Error
	return plans, err
}
