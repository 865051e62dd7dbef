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
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrPlanNotFound      = errors.New("nutrition plan not found")
	ErrPlanAccessDenied  = errors.New("no access to this nutrition plan")
)

type NutritionPlanUsecase interface {
	CreatePlan(ctx context.Context, nutritionistID uuid.UUID, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, requesterID uuid.UUID, planID uuid.UUID) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, userID uuid.UUID, roleID int) (*dto.PlanListResponse, error)
}

type nutritionPlanUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	planRepo         repository.NutritionPlanRepository
	scheduleRepo     repository.MealScheduleRepository
	relationshipRepo repository.RelationshipRepository
	auditService     service.AuditService
}

func NewNutritionPlanUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	planRepo repository.NutritionPlanRepository,
	scheduleRepo repository.MealScheduleRepository,
	relationshipRepo repository.RelationshipRepository,
	auditService service.AuditService,
) NutritionPlanUsecase {
	return &nutritionPlanUsecase{
		db:               db,
		log:              log,
		planRepo:         planRepo,
		scheduleRepo:     scheduleRepo,
		relationshipRepo: relationshipRepo,
		auditService:     auditService,
	}
}

// CreatePlan writes the plan and all its schedules in one transaction, so a
// failed schedule insert never leaves a plan without meals behind.
func (u *nutritionPlanUsecase) CreatePlan(ctx context.Context, nutritionistID uuid.UUID, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	relationship, err := u.relationshipRepo.FindByPair(u.db.WithContext(ctx), nutritionistID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return nil, err
	}
	if relationship == nil {
		return nil, ErrPatientNotLinked
	}

	targetCompliance := req.TargetCompliancePercentage
	if targetCompliance == 0 {
		targetCompliance = 80
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	plan := &entity.NutritionPlan{
		NutritionistID:             nutritionistID,
		PatientID:                  req.PatientID,
		PlanName:                   req.PlanName,
		StartDate:                  startDate,
		EndDate:                    endDate,
		TargetCompliancePercentage: targetCompliance,
		Status:                     entity.PlanStatusActive,
	}

	if err := u.planRepo.Create(tx, plan); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotLinked
		}
		u.log.Warnf("Failed to create plan: %+v", err)
		return nil, err
	}

	schedules := make([]entity.MealSchedule, len(req.Schedules))
	for i, scheduleReq := range req.Schedules {
		schedules[i] = entity.MealSchedule{
			NutritionPlanID: plan.ID,
			DayOfWeek:       scheduleReq.DayOfWeek,
			MealType:        entity.MealType(scheduleReq.MealType),
			ScheduledTime:   scheduleReq.ScheduledTime,
			ExpectedFoods:   datatypes.JSONSlice[string](scheduleReq.ExpectedFoods),
			PortionNotes:    scheduleReq.PortionNotes,
			CaloriesTarget:  scheduleReq.CaloriesTarget,
		}
	}

	if err := u.scheduleRepo.CreateBatch(tx, schedules); err != nil {
		u.log.Warnf("Failed to create meal schedules: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &nutritionistID, entity.AuditActionPlanCreate, entity.JSON{
		"plan_id":    plan.ID.String(),
		"patient_id": req.PatientID.String(),
		"schedules":  len(schedules),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	plan.Schedules = schedules
	return converter.PlanToResponse(plan), nil
}

func (u *nutritionPlanUsecase) GetPlan(ctx context.Context, requesterID uuid.UUID, planID uuid.UUID) (*dto.PlanResponse, error) {
	plan, err := u.planRepo.FindByID(u.db.WithContext(ctx), planID)
	if err != nil {
		u.log.Warnf("Failed to find plan: %+v", err)
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	if plan.NutritionistID != requesterID && plan.PatientID != requesterID {
		return nil, ErrPlanAccessDenied
	}

	return converter.PlanToResponse(plan), nil
}

func (u *nutritionPlanUsecase) ListPlans(ctx context.Context, userID uuid.UUID, roleID int) (*dto.PlanListResponse, error) {
	var plans []entity.NutritionPlan
	var err error

	if roleID == entity.RoleIDNutritionist {
		plans, err = u.planRepo.ListByNutritionist(u.db.WithContext(ctx), userID)
	} else {
		plans, err = u.planRepo.ListByPatient(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list plans: %+v", err)
		return nil, err
	}

	return &dto.PlanListResponse{
		Plans: converter.PlansToResponses(plans),
		Total: len(plans),
	}, nil
}
