package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"
	"nutritrack-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))

	roles := []entity.Role{
		{ID: entity.RoleIDPatient, Name: entity.RolePatient},
		{ID: entity.RoleIDNutritionist, Name: entity.RoleNutritionist},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestAuditService() service.AuditService {
	return service.NewAuditService(newTestLogger(), repository.NewAuditLogRepository())
}

var testUserSeq int

// createTestUser inserts a user with a profile and returns the user.
func createTestUser(t *testing.T, db *gorm.DB, roleID int, username string) *entity.User {
	t.Helper()

	testUserSeq++
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Email:    fmt.Sprintf("%s-%d@example.com", username, testUserSeq),
		Password: string(hashed),
		FullName: "Test " + username,
		RoleID:   roleID,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &entity.Profile{
		UserID:   user.ID,
		Username: username,
	}
	require.NoError(t, db.Create(profile).Error)

	return user
}

func linkPatient(t *testing.T, db *gorm.DB, nutritionistID, patientID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&entity.NutritionistPatient{
		NutritionistID: nutritionistID,
		PatientID:      patientID,
	}).Error)
}

func createTestPlan(t *testing.T, db *gorm.DB, nutritionistID, patientID uuid.UUID, schedules []entity.MealSchedule) *entity.NutritionPlan {
	t.Helper()

	plan := &entity.NutritionPlan{
		NutritionistID:             nutritionistID,
		PatientID:                  patientID,
		PlanName:                   "Test Plan",
		StartDate:                  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                    time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC),
		TargetCompliancePercentage: 80,
		Status:                     entity.PlanStatusActive,
	}
	require.NoError(t, db.Create(plan).Error)

	for i := range schedules {
		schedules[i].NutritionPlanID = plan.ID
	}
	if len(schedules) > 0 {
		require.NoError(t, db.Create(&schedules).Error)
	}
	plan.Schedules = schedules

	return plan
}

// fakeAnalyzer returns a fixed verdict or error without any network call.
type fakeAnalyzer struct {
	verdict *service.MealVerdict
	err     error
	calls   int
}

func (a *fakeAnalyzer) AnalyzeMeal(ctx context.Context, mealType string, expectedFoods []string, imageDescription string) (*service.MealVerdict, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.verdict, nil
}

// fakePhotoStorage records uploads and returns a deterministic URL.
type fakePhotoStorage struct {
	uploads int
	err     error
}

func (s *fakePhotoStorage) UploadBase64Image(ctx context.Context, base64Data, keyPrefix string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads++
	return "https://storage.example.com/" + keyPrefix + "/photo.jpg", nil
}

// noopProgressCache always misses so usecases hit the database.
type noopProgressCache struct {
	invalidations int
}

func (c *noopProgressCache) Get(ctx context.Context, patientID, from, to string) (*service.ProgressSummary, error) {
	return nil, nil
}

func (c *noopProgressCache) Set(ctx context.Context, summary *service.ProgressSummary) error {
	return nil
}

func (c *noopProgressCache) Invalidate(ctx context.Context, patientID string) error {
	c.invalidations++
	return nil
}
