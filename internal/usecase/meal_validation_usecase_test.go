package usecase

import (
	"context"
	"testing"
	"time"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"
	"nutritrack-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMealUsecase(db *gorm.DB, analyzer service.MealAnalyzer, storage service.PhotoStorage, cache service.ProgressCache) MealValidationUsecase {
	return NewMealValidationUsecase(
		db,
		newTestLogger(),
		repository.NewMealValidationRepository(),
		repository.NewMealScheduleRepository(),
		repository.NewRelationshipRepository(),
		analyzer,
		storage,
		cache,
		newTestAuditService(),
	)
}

func approvedVerdict() *service.MealVerdict {
	return &service.MealVerdict{
		IsValid:           true,
		Confidence:        87,
		DetectedFoods:     []string{"grilled chicken", "rice"},
		MissingFoods:      []string{},
		Feedback:          "Well matched to the plan.",
		NutritionalMatch:  92,
		EstimatedCalories: 540,
	}
}

func TestValidateMeal(t *testing.T) {
	db := newTestDB(t)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	linkPatient(t, db, nutritionist.ID, patient.ID)

	plan := createTestPlan(t, db, nutritionist.ID, patient.ID, []entity.MealSchedule{
		{DayOfWeek: 1, MealType: entity.MealTypeLunch, ScheduledTime: "12:30", ExpectedFoods: []string{"grilled chicken", "rice"}},
	})
	schedule := plan.Schedules[0]

	t.Run("approved verdict is persisted with ratio scores", func(t *testing.T) {
		analyzer := &fakeAnalyzer{verdict: approvedVerdict()}
		cache := &noopProgressCache{}
		u := newMealUsecase(db, analyzer, &fakePhotoStorage{}, cache)

		resp, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID:       schedule.ID,
			MealDate:         "2026-08-24",
			ImageDescription: "Grilled chicken with rice",
		})
		require.NoError(t, err)

		assert.Equal(t, string(entity.ValidationStatusApproved), resp.Validation.ValidationStatus)
		// Stored scores are exactly the 0-100 verdict divided by 100.
		assert.Equal(t, 0.87, resp.Validation.ConfidenceScore)
		assert.Equal(t, 0.92, resp.Validation.NutritionalMatch)
		assert.Equal(t, 87.0, resp.Verdict.Confidence)
		assert.Equal(t, 1, analyzer.calls)
		assert.Equal(t, 1, cache.invalidations)

		var stored entity.MealValidation
		require.NoError(t, db.First(&stored, "schedule_id = ?", schedule.ID).Error)
		assert.Equal(t, 0.87, stored.ConfidenceScore)
		assert.Equal(t, entity.ValidationStatusApproved, stored.ValidationStatus)
	})

	t.Run("second submission for the same date conflicts", func(t *testing.T) {
		u := newMealUsecase(db, &fakeAnalyzer{verdict: approvedVerdict()}, &fakePhotoStorage{}, &noopProgressCache{})

		_, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID: schedule.ID,
			MealDate:   "2026-08-24",
		})
		assert.ErrorIs(t, err, ErrMealAlreadyValidated)
	})

	t.Run("invalid verdict is stored as rejected", func(t *testing.T) {
		verdict := approvedVerdict()
		verdict.IsValid = false
		verdict.Confidence = 40
		verdict.MissingFoods = []string{"rice"}
		u := newMealUsecase(db, &fakeAnalyzer{verdict: verdict}, &fakePhotoStorage{}, &noopProgressCache{})

		resp, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID: schedule.ID,
			MealDate:   "2026-08-25",
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.ValidationStatusRejected), resp.Validation.ValidationStatus)
		assert.Equal(t, 0.4, resp.Validation.ConfidenceScore)
		assert.Equal(t, []string{"rice"}, resp.Validation.MissingFoods)
	})

	t.Run("analyzer failure writes nothing", func(t *testing.T) {
		u := newMealUsecase(db, &fakeAnalyzer{err: service.ErrAnalyzerUnavailable}, &fakePhotoStorage{}, &noopProgressCache{})

		var before int64
		db.Model(&entity.MealValidation{}).Count(&before)

		_, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID: schedule.ID,
			MealDate:   "2026-08-26",
		})
		assert.ErrorIs(t, err, service.ErrAnalyzerUnavailable)

		var after int64
		db.Model(&entity.MealValidation{}).Count(&after)
		assert.Equal(t, before, after)
	})

	t.Run("another patient's schedule is rejected", func(t *testing.T) {
		intruder := createTestUser(t, db, entity.RoleIDPatient, "maria456")
		u := newMealUsecase(db, &fakeAnalyzer{verdict: approvedVerdict()}, &fakePhotoStorage{}, &noopProgressCache{})

		_, err := u.ValidateMeal(context.Background(), intruder.ID, &dto.ValidateMealRequest{
			ScheduleID: schedule.ID,
			MealDate:   "2026-08-27",
		})
		assert.ErrorIs(t, err, ErrScheduleAccessDenied)
	})

	t.Run("malformed meal date is rejected", func(t *testing.T) {
		u := newMealUsecase(db, &fakeAnalyzer{verdict: approvedVerdict()}, &fakePhotoStorage{}, &noopProgressCache{})

		_, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID: schedule.ID,
			MealDate:   "not-a-date",
		})
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("archived plan rejects submissions", func(t *testing.T) {
		archived := createTestPlan(t, db, nutritionist.ID, patient.ID, []entity.MealSchedule{
			{DayOfWeek: 2, MealType: entity.MealTypeDinner, ScheduledTime: "19:00", ExpectedFoods: []string{"soup"}},
		})
		require.NoError(t, db.Model(archived).Update("status", entity.PlanStatusArchived).Error)

		u := newMealUsecase(db, &fakeAnalyzer{verdict: approvedVerdict()}, &fakePhotoStorage{}, &noopProgressCache{})
		_, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID: archived.Schedules[0].ID,
			MealDate:   "2026-08-25",
		})
		assert.ErrorIs(t, err, ErrPlanNotActive)
	})

	t.Run("photo is uploaded when provided", func(t *testing.T) {
		storage := &fakePhotoStorage{}
		u := newMealUsecase(db, &fakeAnalyzer{verdict: approvedVerdict()}, storage, &noopProgressCache{})

		resp, err := u.ValidateMeal(context.Background(), patient.ID, &dto.ValidateMealRequest{
			ScheduleID: schedule.ID,
			MealDate:   "2026-08-31",
			ImageData:  "data:image/jpeg;base64,aGVsbG8=",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, storage.uploads)
		assert.NotEmpty(t, resp.Validation.ImageURL)
	})
}

func TestListValidations(t *testing.T) {
	db := newTestDB(t)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	linkPatient(t, db, nutritionist.ID, patient.ID)

	plan := createTestPlan(t, db, nutritionist.ID, patient.ID, []entity.MealSchedule{
		{DayOfWeek: 1, MealType: entity.MealTypeBreakfast, ScheduledTime: "08:00", ExpectedFoods: []string{"oatmeal"}},
	})

	require.NoError(t, db.Create(&entity.MealValidation{
		PatientID:        patient.ID,
		ScheduleID:       plan.Schedules[0].ID,
		MealDate:         time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		MealType:         entity.MealTypeBreakfast,
		ValidationStatus: entity.ValidationStatusApproved,
		ConfidenceScore:  0.9,
		NutritionalMatch: 0.8,
	}).Error)

	u := newMealUsecase(db, &fakeAnalyzer{}, &fakePhotoStorage{}, &noopProgressCache{})

	own, err := u.ListMyValidations(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, own.Total)

	viewed, err := u.ListPatientValidations(context.Background(), nutritionist.ID, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.Total)

	stranger := createTestUser(t, db, entity.RoleIDNutritionist, "dr.costa")
	_, err = u.ListPatientValidations(context.Background(), stranger.ID, patient.ID)
	assert.ErrorIs(t, err, ErrPatientNotLinked)
}
