package usecase

import (
	"context"
	"errors"
	"time"

	"nutritrack-backend/internal/converter"
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/domain/repository"
	"nutritrack-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound     = errors.New("meal schedule not found")
	ErrScheduleAccessDenied = errors.New("meal schedule belongs to another patient")
	ErrPlanNotActive        = errors.New("nutrition plan is not active")
	ErrMealAlreadyValidated = errors.New("this meal has already been validated for that date")
)

type MealValidationUsecase interface {
	ValidateMeal(ctx context.Context, patientID uuid.UUID, req *dto.ValidateMealRequest) (*dto.ValidateMealResponse, error)
	ListMyValidations(ctx context.Context, patientID uuid.UUID) (*dto.MealValidationListResponse, error)
	ListPatientValidations(ctx context.Context, nutritionistID, patientID uuid.UUID) (*dto.MealValidationListResponse, error)
}

type mealValidationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	validationRepo   repository.MealValidationRepository
	scheduleRepo     repository.MealScheduleRepository
	relationshipRepo repository.RelationshipRepository
	analyzer         service.MealAnalyzer
	photoStorage     service.PhotoStorage
	progressCache    service.ProgressCache
	auditService     service.AuditService
}

func NewMealValidationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validationRepo repository.MealValidationRepository,
	scheduleRepo repository.MealScheduleRepository,
	relationshipRepo repository.RelationshipRepository,
	analyzer service.MealAnalyzer,
	photoStorage service.PhotoStorage,
	progressCache service.ProgressCache,
	auditService service.AuditService,
) MealValidationUsecase {
	return &mealValidationUsecase{
		db:               db,
		log:              log,
		validationRepo:   validationRepo,
		scheduleRepo:     scheduleRepo,
		relationshipRepo: relationshipRepo,
		analyzer:         analyzer,
		photoStorage:     photoStorage,
		progressCache:    progressCache,
		auditService:     auditService,
	}
}

// ValidateMeal runs the full submission flow: ownership and duplicate checks,
// one analyzer call, then a single insert. An analyzer failure aborts before
// anything is written, so the patient can simply retry.
func (u *mealValidationUsecase) ValidateMeal(ctx context.Context, patientID uuid.UUID, req *dto.ValidateMealRequest) (*dto.ValidateMealResponse, error) {
	mealDate, err := time.Parse("2006-01-02", req.MealDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	schedule, err := u.scheduleRepo.FindByID(db, req.ScheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.Plan.PatientID != patientID {
		return nil, ErrScheduleAccessDenied
	}
	if schedule.Plan.Status != entity.PlanStatusActive {
		return nil, ErrPlanNotActive
	}

	existing, err := u.validationRepo.FindByScheduleAndDate(db, schedule.ID, mealDate)
	if err != nil {
		u.log.Warnf("Failed to check existing validation: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrMealAlreadyValidated
	}

	var imageURL string
	if req.ImageData != "" {
		imageURL, err = u.photoStorage.UploadBase64Image(ctx, req.ImageData, "meals/"+patientID.String())
		if err != nil {
			u.log.Warnf("Failed to upload meal photo: %+v", err)
			return nil, ErrInvalidImage
		}
	}

	verdict, err := u.analyzer.AnalyzeMeal(ctx, string(schedule.MealType), schedule.ExpectedFoods, req.ImageDescription)
	if err != nil {
		u.log.Warnf("Meal analysis failed: %+v", err)
		return nil, err
	}

	status := entity.ValidationStatusRejected
	if verdict.IsValid {
		status = entity.ValidationStatusApproved
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	validation := &entity.MealValidation{
		PatientID:        patientID,
		ScheduleID:       schedule.ID,
		MealDate:         mealDate,
		MealType:         schedule.MealType,
		ImageURL:         imageURL,
		ExpectedFoods:    schedule.ExpectedFoods,
		DetectedFoods:    datatypes.JSONSlice[string](verdict.DetectedFoods),
		MissingFoods:     datatypes.JSONSlice[string](verdict.MissingFoods),
		ValidationStatus: status,
		// Scores are persisted as 0..1 ratios of the 0-100 verdict values.
		ConfidenceScore:   verdict.Confidence / 100,
		AIFeedback:        verdict.Feedback,
		NutritionalMatch:  verdict.NutritionalMatch / 100,
		CaloriesEstimated: verdict.EstimatedCalories,
	}

	if err := u.validationRepo.Create(tx, validation); err != nil {
		// The unique index closes the duplicate race the pre-check leaves open.
		if isDuplicateKeyError(err, "udx_meal_validation_occurrence") {
			return nil, ErrMealAlreadyValidated
		}
		u.log.Warnf("Failed to create meal validation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &patientID, entity.AuditActionMealValidate, entity.JSON{
		"validation_id": validation.ID.String(),
		"schedule_id":   schedule.ID.String(),
		"meal_date":     req.MealDate,
		"status":        string(status),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Cached progress is stale now; invalidation is best-effort.
	if err := u.progressCache.Invalidate(ctx, patientID.String()); err != nil {
		u.log.Warnf("Failed to invalidate progress cache: %+v", err)
	}

	return &dto.ValidateMealResponse{
		Validation: *converter.MealValidationToResponse(validation),
		Verdict: dto.ValidationVerdictResponse{
			IsValid:           verdict.IsValid,
			Confidence:        verdict.Confidence,
			DetectedFoods:     verdict.DetectedFoods,
			MissingFoods:      verdict.MissingFoods,
			Feedback:          verdict.Feedback,
			NutritionalMatch:  verdict.NutritionalMatch,
			EstimatedCalories: verdict.EstimatedCalories,
		},
	}, nil
}

func (u *mealValidationUsecase) ListMyValidations(ctx context.Context, patientID uuid.UUID) (*dto.MealValidationListResponse, error) {
	validations, err := u.validationRepo.ListByPatient(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list validations: %+v", err)
		return nil, err
	}

	return &dto.MealValidationListResponse{
		Validations: converter.MealValidationsToResponses(validations),
		Total:       len(validations),
	}, nil
}

func (u *mealValidationUsecase) ListPatientValidations(ctx context.Context, nutritionistID, patientID uuid.UUID) (*dto.MealValidationListResponse, error) {
	relationship, err := u.relationshipRepo.FindByPair(u.db.WithContext(ctx), nutritionistID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return nil, err
	}
	if relationship == nil {
		return nil, ErrPatientNotLinked
	}

	return u.ListMyValidations(ctx, patientID)
}
