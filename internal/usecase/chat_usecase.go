package usecase

import (
	"context"
	"errors"

	"nutritrack-backend/internal/converter"
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/domain/repository"
	"nutritrack-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrChatNotLinked = errors.New("chat is only available between a nutritionist and their linked patient")

const defaultConversationLimit = 100

type ChatUsecase interface {
	SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	GetConversation(ctx context.Context, userID, otherID uuid.UUID, limit int) (*dto.ConversationResponse, error)
}

type chatUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	chatRepo         repository.ChatMessageRepository
	relationshipRepo repository.RelationshipRepository
	auditService     service.AuditService
}

func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	chatRepo repository.ChatMessageRepository,
	relationshipRepo repository.RelationshipRepository,
	auditService service.AuditService,
) ChatUsecase {
	return &chatUsecase{
		db:               db,
		log:              log,
		chatRepo:         chatRepo,
		relationshipRepo: relationshipRepo,
		auditService:     auditService,
	}
}

// isLinkedPair accepts the pair in either order since only one direction is
// stored.
func (u *chatUsecase) isLinkedPair(ctx context.Context, a, b uuid.UUID) (bool, error) {
	db := u.db.WithContext(ctx)

	relationship, err := u.relationshipRepo.FindByPair(db, a, b)
	if err != nil {
		return false, err
	}
	if relationship != nil {
		return true, nil
	}

	relationship, err = u.relationshipRepo.FindByPair(db, b, a)
	if err != nil {
		return false, err
	}
	return relationship != nil, nil
}

func (u *chatUsecase) SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	linked, err := u.isLinkedPair(ctx, senderID, req.RecipientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return nil, err
	}
	if !linked {
		return nil, ErrChatNotLinked
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	message := &entity.ChatMessage{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}

	if err := u.chatRepo.Create(tx, message); err != nil {
		u.log.Warnf("Failed to create chat message: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &senderID, entity.AuditActionChatSend, entity.JSON{
		"message_id":   message.ID.String(),
		"recipient_id": req.RecipientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ChatMessageToResponse(message), nil
}

func (u *chatUsecase) GetConversation(ctx context.Context, userID, otherID uuid.UUID, limit int) (*dto.ConversationResponse, error) {
	linked, err := u.isLinkedPair(ctx, userID, otherID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return nil, err
	}
	if !linked {
		return nil, ErrChatNotLinked
	}

	if limit <= 0 || limit > defaultConversationLimit {
		limit = defaultConversationLimit
	}

	messages, err := u.chatRepo.ListConversation(u.db.WithContext(ctx), userID, otherID, limit)
	if err != nil {
		u.log.Warnf("Failed to list conversation: %+v", err)
		return nil, err
	}

	return &dto.ConversationResponse{
		Messages: converter.ChatMessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}
