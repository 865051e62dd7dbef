package handler

import (
	"encoding/json"
	"net/http"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/response"
	"nutritrack-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PlanHandler struct {
	planUsecase usecase.NutritionPlanUsecase
	validator   *validator.CustomValidator
}

func NewPlanHandler(planUsecase usecase.NutritionPlanUsecase, validator *validator.CustomValidator) *PlanHandler {
	return &PlanHandler{
		planUsecase: planUsecase,
		validator:   validator,
	}
}

// CreatePlan creates a nutrition plan with its meal schedules
// @Summary Create a nutrition plan
// @Tags Plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePlanRequest true "Create Plan Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.planUsecase.CreatePlan(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrPatientNotLinked:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create plan")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Plan created successfully", plan)
}

// GetPlan returns one plan with its schedules
// @Summary Get a nutrition plan
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	planID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid plan ID", nil)
		return
	}

	plan, err := h.planUsecase.GetPlan(r.Context(), userID, planID)
	if err != nil {
		switch err {
		case usecase.ErrPlanNotFound:
			response.NotFound(w, "Plan not found")
		case usecase.ErrPlanAccessDenied:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get plan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Plan retrieved successfully", plan)
}

// ListPlans lists plans visible to the caller
// @Summary List nutrition plans
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	plans, err := h.planUsecase.ListPlans(r.Context(), userID, roleID)
	if err != nil {
		response.InternalServerError(w, "Failed to list plans")
		return
	}

	response.Success(w, http.StatusOK, "Plans retrieved successfully", plans)
}
