package converter

import (
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
)

func ScheduleToResponse(schedule *entity.MealSchedule) *dto.MealScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.MealScheduleResponse{
		ID:             schedule.ID,
		DayOfWeek:      schedule.DayOfWeek,
		MealType:       string(schedule.MealType),
		ScheduledTime:  schedule.ScheduledTime,
		ExpectedFoods:  schedule.ExpectedFoods,
		PortionNotes:   schedule.PortionNotes,
		CaloriesTarget: schedule.CaloriesTarget,
	}
}

func PlanToResponse(plan *entity.NutritionPlan) *dto.PlanResponse {
	if plan == nil {
		return nil
	}

	response := &dto.PlanResponse{
		ID:                         plan.ID,
		NutritionistID:             plan.NutritionistID,
		PatientID:                  plan.PatientID,
		PlanName:                   plan.PlanName,
		StartDate:                  plan.StartDate.Format("2006-01-02"),
		EndDate:                    plan.EndDate.Format("2006-01-02"),
		TargetCompliancePercentage: plan.TargetCompliancePercentage,
		Status:                     string(plan.Status),
		CreatedAt:                  plan.CreatedAt,
		UpdatedAt:                  plan.UpdatedAt,
	}

	if len(plan.Schedules) > 0 {
		response.Schedules = make([]dto.MealScheduleResponse, len(plan.Schedules))
		for i, schedule := range plan.Schedules {
			response.Schedules[i] = *ScheduleToResponse(&schedule)
		}
	}

	return response
}

func PlansToResponses(plans []entity.NutritionPlan) []dto.PlanResponse {
	responses := make([]dto.PlanResponse, len(plans))
	for i, plan := range plans {
		resp := PlanToResponse(&plan)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
