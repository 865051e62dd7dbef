package database

import (
	"fmt"

	"nutritrack-backend/config"
	"nutritrack-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// Migrate creates or updates the schema and seeds static reference data.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Profile{},
		&entity.Invitation{},
		&entity.NutritionistPatient{},
		&entity.NutritionPlan{},
		&entity.MealSchedule{},
		&entity.MealValidation{},
		&entity.ChatMessage{},
		&entity.Achievement{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := seedRoles(db); err != nil {
		return err
	}
	return seedAchievements(db)
}

func seedRoles(db *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDPatient, Name: entity.RolePatient},
		{ID: entity.RoleIDNutritionist, Name: entity.RoleNutritionist},
	}
	for _, role := range roles {
		if err := db.Where(entity.Role{ID: role.ID}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// seedAchievements inserts the catalog once; an already seeded database is
// left untouched.
func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Achievement{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count achievements: %w", err)
	}
	if count > 0 {
		return nil
	}

	achievements := []entity.Achievement{
		{Code: "first_meal", Title: "First Steps", Description: "Get your first meal approved", Points: 20, Threshold: 1},
		{Code: "week_one", Title: "One Week Strong", Description: "Seven approved meals", Points: 50, Threshold: 7},
		{Code: "committed", Title: "Committed", Description: "Thirty approved meals", Points: 150, Threshold: 30},
		{Code: "habit_formed", Title: "Habit Formed", Description: "Ninety approved meals", Points: 400, Threshold: 90},
	}

	if err := db.Create(&achievements).Error; err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}

	logrus.Info("Seeded achievement catalog")
	return nil
}
