package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendInvitationRequest struct {
	PatientUsername string `json:"patient_username" validate:"required,min=3,max=30"`
}

// AcceptInvitationRequest resolves the invitation either by id or by code;
// exactly one of the two must be set.
type AcceptInvitationRequest struct {
	InvitationID   string `json:"invitation_id"`
	InvitationCode string `json:"invitation_code"`
}

// Response DTOs

type InvitationResponse struct {
	ID               uuid.UUID `json:"id"`
	NutritionistID   uuid.UUID `json:"nutritionist_id"`
	NutritionistName string    `json:"nutritionist_name,omitempty"`
	PatientUsername  string    `json:"patient_username"`
	InvitationCode   string    `json:"invitation_code"`
	Status           string    `json:"status"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
}

type AcceptInvitationResponse struct {
	Success bool `json:"success"`
}
