package repository

import (
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(db *gorm.DB, message *entity.ChatMessage) error
	// ListConversation returns messages exchanged between the two users,
	// oldest first, capped at limit.
	ListConversation(db *gorm.DB, userA, userB uuid.UUID, limit int) ([]entity.ChatMessage, error)
}
