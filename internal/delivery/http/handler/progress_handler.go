package handler

import (
	"net/http"

	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProgressHandler struct {
	progressUsecase usecase.ProgressUsecase
}

func NewProgressHandler(progressUsecase usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{progressUsecase: progressUsecase}
}

// GetMyProgress returns the caller's adherence summary
// @Summary Get own progress summary
// @Tags Progress
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /progress [get]
func (h *ProgressHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	h.writeProgress(w, r, userID, roleID, userID)
}

// GetPatientProgress returns a linked patient's adherence summary
// @Summary Get a patient's progress summary
// @Tags Progress
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /patients/{id}/progress [get]
func (h *ProgressHandler) GetPatientProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	h.writeProgress(w, r, userID, roleID, patientID)
}

func (h *ProgressHandler) writeProgress(w http.ResponseWriter, r *http.Request, requesterID uuid.UUID, roleID int, patientID uuid.UUID) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	summary, err := h.progressUsecase.GetProgress(r.Context(), requesterID, roleID, patientID, from, to)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrProgressAccessDenied:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to compute progress")
		}
		return
	}

	response.Success(w, http.StatusOK, "Progress retrieved successfully", summary)
}
