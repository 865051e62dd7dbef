package usecase

import (
	"context"
	"testing"
	"time"

	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"
	"nutritrack-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressUsecase(db *gorm.DB, cache service.ProgressCache) ProgressUsecase {
	return NewProgressUsecase(
		db,
		newTestLogger(),
		repository.NewNutritionPlanRepository(),
		repository.NewMealValidationRepository(),
		repository.NewRelationshipRepository(),
		cache,
	)
}

func TestGetProgress(t *testing.T) {
	db := newTestDB(t)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	linkPatient(t, db, nutritionist.ID, patient.ID)

	// Monday and Wednesday slots. 2026-08-24 is a Monday.
	plan := createTestPlan(t, db, nutritionist.ID, patient.ID, []entity.MealSchedule{
		{DayOfWeek: 1, MealType: entity.MealTypeLunch, ScheduledTime: "12:30", ExpectedFoods: []string{"chicken"}},
		{DayOfWeek: 3, MealType: entity.MealTypeDinner, ScheduledTime: "19:00", ExpectedFoods: []string{"fish"}},
	})

	// One approved Monday lunch, one rejected Wednesday dinner.
	require.NoError(t, db.Create(&entity.MealValidation{
		PatientID:        patient.ID,
		ScheduleID:       plan.Schedules[0].ID,
		MealDate:         time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		MealType:         entity.MealTypeLunch,
		ValidationStatus: entity.ValidationStatusApproved,
		ConfidenceScore:  0.9,
		NutritionalMatch: 0.8,
	}).Error)
	require.NoError(t, db.Create(&entity.MealValidation{
		PatientID:        patient.ID,
		ScheduleID:       plan.Schedules[1].ID,
		MealDate:         time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		MealType:         entity.MealTypeDinner,
		ValidationStatus: entity.ValidationStatusRejected,
		ConfidenceScore:  0.5,
		NutritionalMatch: 0.4,
	}).Error)

	u := newProgressUsecase(db, &noopProgressCache{})

	t.Run("computes adherence for the window", func(t *testing.T) {
		// Mon 24th through Sun 30th: one Monday and one Wednesday slot.
		resp, err := u.GetProgress(context.Background(), patient.ID, entity.RoleIDPatient, patient.ID, "2026-08-24", "2026-08-30")
		require.NoError(t, err)

		assert.Equal(t, 2, resp.ScheduledMeals)
		assert.Equal(t, 2, resp.ValidatedMeals)
		assert.Equal(t, 1, resp.ApprovedMeals)
		assert.Equal(t, 50.0, resp.AdherencePercent)
		assert.InDelta(t, 70.0, resp.AvgConfidence, 0.0001)
		assert.InDelta(t, 60.0, resp.AvgNutritionMatch, 0.0001)
	})

	t.Run("linked nutritionist can read", func(t *testing.T) {
		resp, err := u.GetProgress(context.Background(), nutritionist.ID, entity.RoleIDNutritionist, patient.ID, "2026-08-24", "2026-08-30")
		require.NoError(t, err)
		assert.Equal(t, 1, resp.ApprovedMeals)
	})

	t.Run("unlinked nutritionist is denied", func(t *testing.T) {
		stranger := createTestUser(t, db, entity.RoleIDNutritionist, "dr.costa")
		_, err := u.GetProgress(context.Background(), stranger.ID, entity.RoleIDNutritionist, patient.ID, "", "")
		assert.ErrorIs(t, err, ErrProgressAccessDenied)
	})

	t.Run("patient cannot read another patient", func(t *testing.T) {
		other := createTestUser(t, db, entity.RoleIDPatient, "maria456")
		_, err := u.GetProgress(context.Background(), other.ID, entity.RoleIDPatient, patient.ID, "", "")
		assert.ErrorIs(t, err, ErrProgressAccessDenied)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := u.GetProgress(context.Background(), patient.ID, entity.RoleIDPatient, patient.ID, "2026-08-30", "2026-08-24")
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("serves from cache when warm", func(t *testing.T) {
		cached := &service.ProgressSummary{
			PatientID:        patient.ID.String(),
			From:             "2026-08-24",
			To:               "2026-08-30",
			ScheduledMeals:   99,
			ApprovedMeals:    99,
			AdherencePercent: 100,
		}
		u := newProgressUsecase(db, &stubProgressCache{summary: cached})

		resp, err := u.GetProgress(context.Background(), patient.ID, entity.RoleIDPatient, patient.ID, "2026-08-24", "2026-08-30")
		require.NoError(t, err)
		assert.Equal(t, 99, resp.ScheduledMeals)
	})
}

// stubProgressCache always hits with the configured summary.
type stubProgressCache struct {
	summary *service.ProgressSummary
}

func (c *stubProgressCache) Get(ctx context.Context, patientID, from, to string) (*service.ProgressSummary, error) {
	return c.summary, nil
}

func (c *stubProgressCache) Set(ctx context.Context, summary *service.ProgressSummary) error {
	return nil
}

func (c *stubProgressCache) Invalidate(ctx context.Context, patientID string) error {
	return nil
}
