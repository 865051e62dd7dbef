package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/service"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/response"
	"nutritrack-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MealHandler struct {
	mealUsecase usecase.MealValidationUsecase
	validator   *validator.CustomValidator
}

func NewMealHandler(mealUsecase usecase.MealValidationUsecase, validator *validator.CustomValidator) *MealHandler {
	return &MealHandler{
		mealUsecase: mealUsecase,
		validator:   validator,
	}
}

// ValidateMeal submits a meal for AI validation
// @Summary Validate a meal against the plan
// @Tags Meals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ValidateMealRequest true "Validate Meal Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /meals/validate [post]
func (h *MealHandler) ValidateMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ValidateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.mealUsecase.ValidateMeal(r.Context(), userID, &req)
	if err != nil {
		switch {
		case err == usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case err == usecase.ErrScheduleNotFound:
			response.NotFound(w, err.Error())
		case err == usecase.ErrScheduleAccessDenied:
			response.Forbidden(w, err.Error())
		case err == usecase.ErrPlanNotActive:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case err == usecase.ErrMealAlreadyValidated:
			response.Conflict(w, err.Error())
		case err == usecase.ErrInvalidImage:
			response.Error(w, http.StatusBadRequest, "Invalid image payload", nil)
		case errors.Is(err, service.ErrAnalyzerUnavailable):
			response.Error(w, http.StatusBadGateway, "Meal analysis is temporarily unavailable", nil)
		case errors.Is(err, service.ErrMalformedVerdict):
			response.Error(w, http.StatusBadGateway, "Meal analysis returned an unusable result", nil)
		default:
			response.InternalServerError(w, "Failed to validate meal")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Meal validated successfully", result)
}

// ListMyValidations lists the caller's own validation history
// @Summary List own meal validations
// @Tags Meals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /meals/validations [get]
func (h *MealHandler) ListMyValidations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	validations, err := h.mealUsecase.ListMyValidations(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list validations")
		return
	}

	response.Success(w, http.StatusOK, "Validations retrieved successfully", validations)
}

// ListPatientValidations lists a linked patient's validation history
// @Summary List a patient's meal validations
// @Tags Meals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /patients/{id}/validations [get]
func (h *MealHandler) ListPatientValidations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	validations, err := h.mealUsecase.ListPatientValidations(r.Context(), userID, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotLinked:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to list validations")
		}
		return
	}

	response.Success(w, http.StatusOK, "Validations retrieved successfully", validations)
}
