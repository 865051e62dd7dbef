package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/delivery/http/middleware"
	"nutritrack-backend/internal/usecase"
	"nutritrack-backend/pkg/response"
	"nutritrack-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

// SendMessage sends a message to a linked user
// @Summary Send a chat message
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Send Message Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.chatUsecase.SendMessage(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrChatNotLinked:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

// GetConversation lists messages exchanged with another user
// @Summary Get a conversation
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Other user ID"
// @Param limit query int false "Maximum number of messages"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /chat/conversations/{id} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	otherID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	conversation, err := h.chatUsecase.GetConversation(r.Context(), userID, otherID, limit)
	if err != nil {
		switch err {
		case usecase.ErrChatNotLinked:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get conversation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", conversation)
}
