package handler

import (
	"encoding/json"
	"net/http"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/response"
	"nutritrack-backend/pkg/validator"
)

type InvitationHandler struct {
	invitationUsecase usecase.InvitationUsecase
	validator         *validator.CustomValidator
}

func NewInvitationHandler(invitationUsecase usecase.InvitationUsecase, validator *validator.CustomValidator) *InvitationHandler {
	return &InvitationHandler{
		invitationUsecase: invitationUsecase,
		validator:         validator,
	}
}

// SendInvitation creates a pending invitation to a patient username
// @Summary Invite a patient by username
// @Tags Invitations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendInvitationRequest true "Send Invitation Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /invitations [post]
func (h *InvitationHandler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invitation, err := h.invitationUsecase.SendInvitation(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidUsername:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrInvitationAlreadyPending:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to send invitation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invitation sent successfully", invitation)
}

// ListInvitations lists invitations visible to the caller
// @Summary List invitations
// @Tags Invitations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /invitations [get]
func (h *InvitationHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	invitations, err := h.invitationUsecase.ListInvitations(r.Context(), userID, roleID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to list invitations")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invitations retrieved successfully", invitations)
}

// AcceptInvitation accepts a pending invitation by id or code
// @Summary Accept an invitation
// @Tags Invitations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AcceptInvitationRequest true "Accept Invitation Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /invitations/accept [post]
func (h *InvitationHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.invitationUsecase.AcceptInvitation(r.Context(), userID, &req)
	if err != nil {
		h.writeInvitationError(w, err, "Failed to accept invitation")
		return
	}

	response.Success(w, http.StatusOK, "Invitation accepted successfully", result)
}

// RejectInvitation rejects a pending invitation by id or code
// @Summary Reject an invitation
// @Tags Invitations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AcceptInvitationRequest true "Reject Invitation Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /invitations/reject [post]
func (h *InvitationHandler) RejectInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.invitationUsecase.RejectInvitation(r.Context(), userID, &req)
	if err != nil {
		h.writeInvitationError(w, err, "Failed to reject invitation")
		return
	}

	response.Success(w, http.StatusOK, "Invitation rejected successfully", result)
}

func (h *InvitationHandler) writeInvitationError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrInvitationReference:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrInvitationNotFound:
		response.NotFound(w, err.Error())
	case usecase.ErrInvitationExpired:
		response.Error(w, http.StatusGone, err.Error(), nil)
	case usecase.ErrInvitationNotOwned:
		response.Forbidden(w, err.Error())
	case usecase.ErrProfileNotFound:
		response.NotFound(w, "Profile not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
