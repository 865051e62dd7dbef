package repository

import (
	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type achievementRepository struct{}

func NewAchievementRepository() domainRepo.AchievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) CreateBatch(db *gorm.DB, achievements []entity.Achievement) error {
	return db.Create(&achievements).Error
}

func (r *achievementRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Achievement{}).Count(&count).Error
	return count, err
}

func (r *achievementRepository) ListAll(db *gorm.DB) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := db.Order("threshold ASC").Find(&achievements).Error
	return achievements, err
}
