package converter

import (
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// InvitationToResponse converts an Invitation entity to its response DTO
func InvitationToResponse(invitation *entity.Invitation) *dto.InvitationResponse {
	if invitation == nil {
		return nil
	}

	response := &dto.InvitationResponse{
		ID:              invitation.ID,
		NutritionistID:  invitation.NutritionistID,
		PatientUsername: invitation.PatientUsername,
		InvitationCode:  invitation.InvitationCode,
		Status:          string(invitation.Status),
		ExpiresAt:       invitation.ExpiresAt,
		CreatedAt:       invitation.CreatedAt,
	}

	if invitation.Nutritionist.ID != uuid.Nil {
		response.NutritionistName = invitation.Nutritionist.FullName
	}

	return response
}

func InvitationsToResponses(invitations []entity.Invitation) []dto.InvitationResponse {
	responses := make([]dto.InvitationResponse, len(invitations))
	for i, invitation := range invitations {
		resp := InvitationToResponse(&invitation)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
