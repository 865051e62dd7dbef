package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"nutritrack-backend/config"
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvitationUsecase(db *gorm.DB) InvitationUsecase {
	return NewInvitationUsecase(
		db,
		newTestLogger(),
		config.InvitationConfig{Expiry: 7 * 24 * time.Hour},
		repository.NewInvitationRepository(),
		repository.NewProfileRepository(),
		repository.NewRelationshipRepository(),
		newTestAuditService(),
	)
}

func TestSendInvitation(t *testing.T) {
	db := newTestDB(t)
	u := newInvitationUsecase(db)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")

	t.Run("creates pending invitation with code and expiry", func(t *testing.T) {
		resp, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
			PatientUsername: "Joao123",
		})
		require.NoError(t, err)

		// Username is normalized to lowercase.
		assert.Equal(t, "joao123", resp.PatientUsername)
		assert.Equal(t, string(entity.InvitationStatusPending), resp.Status)
		assert.Len(t, resp.InvitationCode, 8)
		assert.Equal(t, strings.ToUpper(resp.InvitationCode), resp.InvitationCode)
		assert.True(t, resp.ExpiresAt.After(time.Now().Add(6*24*time.Hour)))
	})

	t.Run("rejects invalid username before writing", func(t *testing.T) {
		var before int64
		db.Model(&entity.Invitation{}).Count(&before)

		_, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
			PatientUsername: "Bad User!",
		})
		assert.ErrorIs(t, err, ErrInvalidUsername)

		var after int64
		db.Model(&entity.Invitation{}).Count(&after)
		assert.Equal(t, before, after)
	})

	t.Run("rejects duplicate pending invitation", func(t *testing.T) {
		_, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
			PatientUsername: "joao123",
		})
		assert.ErrorIs(t, err, ErrInvitationAlreadyPending)
	})

	t.Run("allows a new invitation after the pending one is rejected", func(t *testing.T) {
		require.NoError(t, db.Model(&entity.Invitation{}).
			Where("patient_username = ?", "joao123").
			Update("status", entity.InvitationStatusRejected).Error)

		_, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
			PatientUsername: "joao123",
		})
		assert.NoError(t, err)
	})
}

func TestAcceptInvitation(t *testing.T) {
	db := newTestDB(t)
	u := newInvitationUsecase(db)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	sent, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
		PatientUsername: "joao123",
	})
	require.NoError(t, err)

	t.Run("rejects acceptance by another user", func(t *testing.T) {
		other := createTestUser(t, db, entity.RoleIDPatient, "maria456")

		_, err := u.AcceptInvitation(context.Background(), other.ID, &dto.AcceptInvitationRequest{
			InvitationID: sent.ID.String(),
		})
		assert.ErrorIs(t, err, ErrInvitationNotOwned)
	})

	t.Run("accepts and creates the relationship", func(t *testing.T) {
		resp, err := u.AcceptInvitation(context.Background(), patient.ID, &dto.AcceptInvitationRequest{
			InvitationID: sent.ID.String(),
		})
		require.NoError(t, err)
		assert.True(t, resp.Success)

		var invitation entity.Invitation
		require.NoError(t, db.First(&invitation, "id = ?", sent.ID).Error)
		assert.Equal(t, entity.InvitationStatusAccepted, invitation.Status)

		var count int64
		db.Model(&entity.NutritionistPatient{}).
			Where("nutritionist_id = ? AND patient_id = ?", nutritionist.ID, patient.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("second accept resolves to not found", func(t *testing.T) {
		_, err := u.AcceptInvitation(context.Background(), patient.ID, &dto.AcceptInvitationRequest{
			InvitationID: sent.ID.String(),
		})
		assert.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("accepts by code case-insensitively", func(t *testing.T) {
		second := createTestUser(t, db, entity.RoleIDNutritionist, "dr.costa")
		sent2, err := u.SendInvitation(context.Background(), second.ID, &dto.SendInvitationRequest{
			PatientUsername: "joao123",
		})
		require.NoError(t, err)

		resp, err := u.AcceptInvitation(context.Background(), patient.ID, &dto.AcceptInvitationRequest{
			InvitationCode: strings.ToLower(sent2.InvitationCode),
		})
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("expired invitation cannot be accepted", func(t *testing.T) {
		third := createTestUser(t, db, entity.RoleIDNutritionist, "dr.lima")
		expired := &entity.Invitation{
			NutritionistID:  third.ID,
			PatientUsername: "joao123",
			InvitationCode:  "DEADBEEF",
			Status:          entity.InvitationStatusPending,
			ExpiresAt:       time.Now().Add(-time.Hour),
		}
		require.NoError(t, db.Create(expired).Error)

		_, err := u.AcceptInvitation(context.Background(), patient.ID, &dto.AcceptInvitationRequest{
			InvitationID: expired.ID.String(),
		})
		assert.ErrorIs(t, err, ErrInvitationExpired)
	})

	t.Run("missing reference is rejected", func(t *testing.T) {
		_, err := u.AcceptInvitation(context.Background(), patient.ID, &dto.AcceptInvitationRequest{})
		assert.ErrorIs(t, err, ErrInvitationReference)
	})
}

func TestRejectInvitation(t *testing.T) {
	db := newTestDB(t)
	u := newInvitationUsecase(db)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	sent, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
		PatientUsername: "joao123",
	})
	require.NoError(t, err)

	resp, err := u.RejectInvitation(context.Background(), patient.ID, &dto.AcceptInvitationRequest{
		InvitationID: sent.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// No relationship is created on reject.
	var count int64
	db.Model(&entity.NutritionistPatient{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListInvitations(t *testing.T) {
	db := newTestDB(t)
	u := newInvitationUsecase(db)
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	_, err := u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
		PatientUsername: "joao123",
	})
	require.NoError(t, err)
	_, err = u.SendInvitation(context.Background(), nutritionist.ID, &dto.SendInvitationRequest{
		PatientUsername: "someone.else",
	})
	require.NoError(t, err)

	nutritionistView, err := u.ListInvitations(context.Background(), nutritionist.ID, entity.RoleIDNutritionist)
	require.NoError(t, err)
	assert.Equal(t, 2, nutritionistView.Total)

	patientView, err := u.ListInvitations(context.Background(), patient.ID, entity.RoleIDPatient)
	require.NoError(t, err)
	assert.Equal(t, 1, patientView.Total)
	assert.Equal(t, "joao123", patientView.Invitations[0].PatientUsername)
}
