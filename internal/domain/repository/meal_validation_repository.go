package repository

import (
	"time"

	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealValidationRepository interface {
	Create(db *gorm.DB, validation *entity.MealValidation) error
	FindByScheduleAndDate(db *gorm.DB, scheduleID uuid.UUID, mealDate time.Time) (*entity.MealValidation, error)
	ListByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.MealValidation, error)
	ListByPatientBetween(db *gorm.DB, patientID uuid.UUID, from, to time.Time) ([]entity.MealValidation, error)
	CountByPatientAndStatus(db *gorm.DB, patientID uuid.UUID, status entity.ValidationStatus) (int64, error)
}
