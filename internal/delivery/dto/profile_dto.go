package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName            string   `json:"full_name" validate:"omitempty,min=2,max=255"`
	Age                 int      `json:"age" validate:"omitempty,gte=0,lte=130"`
	HeightCm            float64  `json:"height_cm" validate:"omitempty,gte=0,lte=300"`
	WeightKg            float64  `json:"weight_kg" validate:"omitempty,gte=0,lte=500"`
	ActivityLevel       string   `json:"activity_level" validate:"omitempty,max=50"`
	DietGoal            string   `json:"diet_goal" validate:"omitempty,max=100"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
}

type UploadAvatarRequest struct {
	// ImageData is a data-URL base64 payload: "data:image/jpeg;base64,...".
	ImageData string `json:"image_data" validate:"required"`
}

type ProfileResponse struct {
	UserID              uuid.UUID `json:"user_id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	Username            string    `json:"username"`
	Role                string    `json:"role"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	Age                 int       `json:"age,omitempty"`
	HeightCm            float64   `json:"height_cm,omitempty"`
	WeightKg            float64   `json:"weight_kg,omitempty"`
	ActivityLevel       string    `json:"activity_level,omitempty"`
	DietGoal            string    `json:"diet_goal,omitempty"`
	DietaryRestrictions []string  `json:"dietary_restrictions,omitempty"`
	Allergies           []string  `json:"allergies,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []ProfileResponse `json:"patients"`
	Total    int               `json:"total"`
}
