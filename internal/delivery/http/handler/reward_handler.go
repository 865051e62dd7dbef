package handler

import (
	"net/http"

	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/response"
)

type RewardHandler struct {
	rewardUsecase usecase.RewardUsecase
}

func NewRewardHandler(rewardUsecase usecase.RewardUsecase) *RewardHandler {
	return &RewardHandler{rewardUsecase: rewardUsecase}
}

// GetRewards returns the caller's points, streak and achievements
// @Summary Get rewards state
// @Tags Rewards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /rewards [get]
func (h *RewardHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rewards, err := h.rewardUsecase.GetRewards(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get rewards")
		return
	}

	response.Success(w, http.StatusOK, "Rewards retrieved successfully", rewards)
}
