package repository

import (
	"nutritrack-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AchievementRepository interface {
	CreateBatch(db *gorm.DB, achievements []entity.Achievement) error
	Count(db *gorm.DB) (int64, error)
	ListAll(db *gorm.DB) ([]entity.Achievement, error)
}
