package usecase

import (
	"context"
	"errors"
	"time"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/domain/repository"
	"nutritrack-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProgressAccessDenied = errors.New("no access to this patient's progress")

type ProgressUsecase interface {
	GetProgress(ctx context.Context, requesterID uuid.UUID, roleID int, patientID uuid.UUID, from, to string) (*dto.ProgressSummaryResponse, error)
}

type progressUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	planRepo         repository.NutritionPlanRepository
	validationRepo   repository.MealValidationRepository
	relationshipRepo repository.RelationshipRepository
	progressCache    service.ProgressCache
}

func NewProgressUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	planRepo repository.NutritionPlanRepository,
	validationRepo repository.MealValidationRepository,
	relationshipRepo repository.RelationshipRepository,
	progressCache service.ProgressCache,
) ProgressUsecase {
	return &progressUsecase{
		db:               db,
		log:              log,
		planRepo:         planRepo,
		validationRepo:   validationRepo,
		relationshipRepo: relationshipRepo,
		progressCache:    progressCache,
	}
}

// GetProgress aggregates adherence over a date window. Patients may only read
// their own numbers; nutritionists only those of linked patients. Results are
// cached per patient and window.
func (u *progressUsecase) GetProgress(ctx context.Context, requesterID uuid.UUID, roleID int, patientID uuid.UUID, from, to string) (*dto.ProgressSummaryResponse, error) {
	if roleID == entity.RoleIDNutritionist {
		relationship, err := u.relationshipRepo.FindByPair(u.db.WithContext(ctx), requesterID, patientID)
		if err != nil {
			u.log.Warnf("Failed to check relationship: %+v", err)
			return nil, err
		}
		if relationship == nil {
			return nil, ErrProgressAccessDenied
		}
	} else if requesterID != patientID {
		return nil, ErrProgressAccessDenied
	}

	// Default window: the last seven days including today.
	var fromDate, toDate time.Time
	var err error
	if to == "" {
		toDate = time.Now().Truncate(24 * time.Hour)
	} else if toDate, err = time.Parse("2006-01-02", to); err != nil {
		return nil, ErrInvalidDateFormat
	}
	if from == "" {
		fromDate = toDate.AddDate(0, 0, -6)
	} else if fromDate, err = time.Parse("2006-01-02", from); err != nil {
		return nil, ErrInvalidDateFormat
	}
	if toDate.Before(fromDate) {
		return nil, ErrInvalidDateRange
	}

	fromKey := fromDate.Format("2006-01-02")
	toKey := toDate.Format("2006-01-02")

	if cached, err := u.progressCache.Get(ctx, patientID.String(), fromKey, toKey); err != nil {
		u.log.Warnf("Failed to read progress cache: %+v", err)
	} else if cached != nil {
		return summaryToResponse(cached), nil
	}

	summary, err := u.computeSummary(ctx, patientID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	if err := u.progressCache.Set(ctx, summary); err != nil {
		u.log.Warnf("Failed to write progress cache: %+v", err)
	}

	return summaryToResponse(summary), nil
}

func (u *progressUsecase) computeSummary(ctx context.Context, patientID uuid.UUID, fromDate, toDate time.Time) (*service.ProgressSummary, error) {
	db := u.db.WithContext(ctx)

	plans, err := u.planRepo.ListActiveByPatient(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list active plans: %+v", err)
		return nil, err
	}

	// Count how often each schedule slot occurs inside the window, clipped
	// to the plan's own date range.
	scheduled := 0
	for day := fromDate; !day.After(toDate); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday())
		for _, plan := range plans {
			if day.Before(plan.StartDate) || day.After(plan.EndDate) {
				continue
			}
			for _, schedule := range plan.Schedules {
				if schedule.DayOfWeek == weekday {
					scheduled++
				}
			}
		}
	}

	validations, err := u.validationRepo.ListByPatientBetween(db, patientID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to list validations: %+v", err)
		return nil, err
	}

	approved := 0
	var confidenceSum, matchSum float64
	for _, validation := range validations {
		if validation.IsApproved() {
			approved++
		}
		confidenceSum += validation.ConfidenceScore
		matchSum += validation.NutritionalMatch
	}

	summary := &service.ProgressSummary{
		PatientID:      patientID.String(),
		From:           fromDate.Format("2006-01-02"),
		To:             toDate.Format("2006-01-02"),
		ScheduledMeals: scheduled,
		ValidatedMeals: len(validations),
		ApprovedMeals:  approved,
		ComputedAt:     time.Now(),
	}
	if scheduled > 0 {
		summary.AdherencePercent = float64(approved) / float64(scheduled) * 100
	}
	if len(validations) > 0 {
		// Back to the 0-100 display scale.
		summary.AvgConfidence = confidenceSum / float64(len(validations)) * 100
		summary.AvgNutritionMatch = matchSum / float64(len(validations)) * 100
	}

	return summary, nil
}

func summaryToResponse(summary *service.ProgressSummary) *dto.ProgressSummaryResponse {
	return &dto.ProgressSummaryResponse{
		PatientID:         summary.PatientID,
		From:              summary.From,
		To:                summary.To,
		ScheduledMeals:    summary.ScheduledMeals,
		ValidatedMeals:    summary.ValidatedMeals,
		ApprovedMeals:     summary.ApprovedMeals,
		AdherencePercent:  summary.AdherencePercent,
		AvgConfidence:     summary.AvgConfidence,
		AvgNutritionMatch: summary.AvgNutritionMatch,
	}
}
