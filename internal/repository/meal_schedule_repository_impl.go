package repository

import (
	"errors"

	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mealScheduleRepository struct{}

func NewMealScheduleRepository() domainRepo.MealScheduleRepository {
	return &mealScheduleRepository{}
}

func (r *mealScheduleRepository) CreateBatch(db *gorm.DB, schedules []entity.MealSchedule) error {
	return db.Create(&schedules).Error
}

func (r *mealScheduleRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MealSchedule, error) {
	var schedule entity.MealSchedule
	err := db.Preload("Plan").Where("id = ?", id).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *mealScheduleRepository) ListByPlan(db *gorm.DB, planID uuid.UUID) ([]entity.MealSchedule, error) {
	var schedules []entity.MealSchedule
	err := db.Where("nutrition_plan_id = ?", planID).
		Order("day_of_week ASC, scheduled_time ASC").
		Find(&schedules).Error
	return schedules, err
}
