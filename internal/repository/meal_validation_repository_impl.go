package repository

import (
	"errors"
	"time"

	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mealValidationRepository struct{}

func NewMealValidationRepository() domainRepo.MealValidationRepository {
	return &mealValidationRepository{}
}

func (r *mealValidationRepository) Create(db *gorm.DB, validation *entity.MealValidation) error {
	return db.Create(validation).Error
}

func (r *mealValidationRepository) FindByScheduleAndDate(db *gorm.DB, scheduleID uuid.UUID, mealDate time.Time) (*entity.MealValidation, error) {
	var validation entity.MealValidation
	err := db.Where("schedule_id = ? AND meal_date = ?", scheduleID, mealDate).First(&validation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &validation, nil
}

func (r *mealValidationRepository) ListByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.MealValidation, error) {
	var validations []entity.MealValidation
	err := db.Where("patient_id = ?", patientID).
		Order("meal_date DESC, created_at DESC").
		Find(&validations).Error
	return validations, err
}

func (r *mealValidationRepository) ListByPatientBetween(db *gorm.DB, patientID uuid.UUID, from, to time.Time) ([]entity.MealValidation, error) {
	var validations []entity.MealValidation
	err := db.Where("patient_id = ? AND meal_date >= ? AND meal_date <= ?", patientID, from, to).
		Order("meal_date ASC").
		Find(&validations).Error
	return validations, err
}

func (r *mealValidationRepository) CountByPatientAndStatus(db *gorm.DB, patientID uuid.UUID, status entity.ValidationStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.MealValidation{}).
		Where("patient_id = ? AND validation_status = ?", patientID, status).
		Count(&count).Error
	return count, err
}
