package repository

import (
	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type chatMessageRepository struct{}

func NewChatMessageRepository() domainRepo.ChatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(db *gorm.DB, message *entity.ChatMessage) error {
	return db.Create(message).Error
}

func (r *chatMessageRepository) ListConversation(db *gorm.DB, userA, userB uuid.UUID, limit int) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	err := db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
