package converter

import (
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
)

func MealValidationToResponse(validation *entity.MealValidation) *dto.MealValidationResponse {
	if validation == nil {
		return nil
	}

	return &dto.MealValidationResponse{
		ID:                validation.ID,
		ScheduleID:        validation.ScheduleID,
		MealDate:          validation.MealDate.Format("2006-01-02"),
		MealType:          string(validation.MealType),
		ImageURL:          validation.ImageURL,
		ExpectedFoods:     validation.ExpectedFoods,
		DetectedFoods:     validation.DetectedFoods,
		MissingFoods:      validation.MissingFoods,
		ValidationStatus:  string(validation.ValidationStatus),
		ConfidenceScore:   validation.ConfidenceScore,
		AIFeedback:        validation.AIFeedback,
		NutritionalMatch:  validation.NutritionalMatch,
		CaloriesEstimated: validation.CaloriesEstimated,
		CreatedAt:         validation.CreatedAt,
	}
}

func MealValidationsToResponses(validations []entity.MealValidation) []dto.MealValidationResponse {
	responses := make([]dto.MealValidationResponse, len(validations))
	for i, validation := range validations {
		resp := MealValidationToResponse(&validation)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
