package repository

import (
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealScheduleRepository interface {
	CreateBatch(db *gorm.DB, schedules []entity.MealSchedule) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MealSchedule, error)
	ListByPlan(db *gorm.DB, planID uuid.UUID) ([]entity.MealSchedule, error)
}
