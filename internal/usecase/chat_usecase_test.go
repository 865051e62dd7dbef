package usecase

import (
	"context"
	"fmt"
	"testing"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatUsecase(db *gorm.DB) ChatUsecase {
	return NewChatUsecase(
		db,
		newTestLogger(),
		repository.NewChatMessageRepository(),
		repository.NewRelationshipRepository(),
		newTestAuditService(),
	)
}

func TestSendMessage(t *testing.T) {
	db := newTestDB(t)
	u := newChatUsecase(db)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	linkPatient(t, db, nutritionist.ID, patient.ID)

	t.Run("linked pair can message in both directions", func(t *testing.T) {
		fromPatient, err := u.SendMessage(context.Background(), patient.ID, &dto.SendMessageRequest{
			RecipientID: nutritionist.ID,
			Content:     "Had to swap rice for potatoes today",
		})
		require.NoError(t, err)
		assert.Equal(t, patient.ID, fromPatient.SenderID)

		fromNutritionist, err := u.SendMessage(context.Background(), nutritionist.ID, &dto.SendMessageRequest{
			RecipientID: patient.ID,
			Content:     "That works, keep the portion similar",
		})
		require.NoError(t, err)
		assert.Equal(t, nutritionist.ID, fromNutritionist.SenderID)
	})

	t.Run("unlinked users cannot message", func(t *testing.T) {
		stranger := createTestUser(t, db, entity.RoleIDPatient, "maria456")
		_, err := u.SendMessage(context.Background(), stranger.ID, &dto.SendMessageRequest{
			RecipientID: nutritionist.ID,
			Content:     "hello",
		})
		assert.ErrorIs(t, err, ErrChatNotLinked)
	})
}

func TestGetConversation(t *testing.T) {
	db := newTestDB(t)
	u := newChatUsecase(db)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	linkPatient(t, db, nutritionist.ID, patient.ID)

	for i := 0; i < 3; i++ {
		_, err := u.SendMessage(context.Background(), patient.ID, &dto.SendMessageRequest{
			RecipientID: nutritionist.ID,
			Content:     fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}

	t.Run("returns messages oldest first", func(t *testing.T) {
		conversation, err := u.GetConversation(context.Background(), nutritionist.ID, patient.ID, 0)
		require.NoError(t, err)
		require.Equal(t, 3, conversation.Total)
		assert.Equal(t, "message 0", conversation.Messages[0].Content)
		assert.Equal(t, "message 2", conversation.Messages[2].Content)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		conversation, err := u.GetConversation(context.Background(), nutritionist.ID, patient.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, conversation.Total)
	})

	t.Run("unlinked pair is denied", func(t *testing.T) {
		stranger := createTestUser(t, db, entity.RoleIDPatient, "maria456")
		_, err := u.GetConversation(context.Background(), stranger.ID, nutritionist.ID, 0)
		assert.ErrorIs(t, err, ErrChatNotLinked)
	})
}
