package converter

import (
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
)

// ProfileToResponse merges the profile row with its user row into one DTO.
// user may be nil when the caller only preloaded the profile.
func ProfileToResponse(profile *entity.Profile, user *entity.User) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.ProfileResponse{
		UserID:              profile.UserID,
		Username:            profile.Username,
		AvatarURL:           profile.AvatarURL,
		Age:                 profile.Age,
		HeightCm:            profile.HeightCm,
		WeightKg:            profile.WeightKg,
		ActivityLevel:       profile.ActivityLevel,
		DietGoal:            profile.DietGoal,
		DietaryRestrictions: profile.DietaryRestrictions,
		Allergies:           profile.Allergies,
		CreatedAt:           profile.CreatedAt,
		UpdatedAt:           profile.UpdatedAt,
	}

	if user != nil {
		response.Email = user.Email
		response.FullName = user.FullName
		response.Role = entity.RoleName(user.RoleID)
	}

	return response
}

func ProfilesToResponses(profiles []entity.Profile) []dto.ProfileResponse {
	responses := make([]dto.ProfileResponse, len(profiles))
	for i, profile := range profiles {
		user := profile.User
		resp := ProfileToResponse(&profile, &user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
