package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutritrack-backend/config"
	"nutritrack-backend/internal/converter"
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/domain/repository"
	"nutritrack-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvitationAlreadyPending = errors.New("a pending invitation for this username already exists")
	ErrInvitationNotFound       = errors.New("invitation not found or no longer pending")
	ErrInvitationExpired        = errors.New("invitation has expired")
	ErrInvitationNotOwned       = errors.New("invitation was issued to a different username")
	ErrInvitationReference      = errors.New("either invitation_id or invitation_code is required")
	ErrProfileNotFound          = errors.New("profile not found")
)

type InvitationUsecase interface {
	SendInvitation(ctx context.Context, nutritionistID uuid.UUID, req *dto.SendInvitationRequest) (*dto.InvitationResponse, error)
	ListInvitations(ctx context.Context, userID uuid.UUID, roleID int) (*dto.InvitationListResponse, error)
	AcceptInvitation(ctx context.Context, patientID uuid.UUID, req *dto.AcceptInvitationRequest) (*dto.AcceptInvitationResponse, error)
	RejectInvitation(ctx context.Context, patientID uuid.UUID, req *dto.AcceptInvitationRequest) (*dto.AcceptInvitationResponse, error)
}

type invitationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	invitationConfig config.InvitationConfig
	invitationRepo   repository.InvitationRepository
	profileRepo      repository.ProfileRepository
	relationshipRepo repository.RelationshipRepository
	auditService     service.AuditService
}

func NewInvitationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invitationConfig config.InvitationConfig,
	invitationRepo repository.InvitationRepository,
	profileRepo repository.ProfileRepository,
	relationshipRepo repository.RelationshipRepository,
	auditService service.AuditService,
) InvitationUsecase {
	return &invitationUsecase{
		db:               db,
		log:              log,
		invitationConfig: invitationConfig,
		invitationRepo:   invitationRepo,
		profileRepo:      profileRepo,
		relationshipRepo: relationshipRepo,
		auditService:     auditService,
	}
}

func (u *invitationUsecase) SendInvitation(ctx context.Context, nutritionistID uuid.UUID, req *dto.SendInvitationRequest) (*dto.InvitationResponse, error) {
	// Validate the username shape before touching the database. The target
	// user does not have to exist yet.
	username := strings.ToLower(strings.TrimSpace(req.PatientUsername))
	if !entity.IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}

	existing, err := u.invitationRepo.FindPendingByNutritionistAndUsername(u.db.WithContext(ctx), nutritionistID, username)
	if err != nil {
		u.log.Warnf("Failed to check pending invitation: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrInvitationAlreadyPending
	}

	code, err := generateInvitationCode()
	if err != nil {
		u.log.Warnf("Failed to generate invitation code: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invitation := &entity.Invitation{
		NutritionistID:  nutritionistID,
		PatientUsername: username,
		InvitationCode:  code,
		Status:          entity.InvitationStatusPending,
		ExpiresAt:       time.Now().Add(u.invitationConfig.Expiry),
	}

	if err := u.invitationRepo.Create(tx, invitation); err != nil {
		// The partial unique index closes the race the pre-check leaves open.
		if isDuplicateKeyError(err, "udx_invitations_pending") {
			return nil, ErrInvitationAlreadyPending
		}
		u.log.Warnf("Failed to create invitation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &nutritionistID, entity.AuditActionInvitationSend, entity.JSON{
		"invitation_id":    invitation.ID.String(),
		"patient_username": username,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvitationToResponse(invitation), nil
}

func (u *invitationUsecase) ListInvitations(ctx context.Context, userID uuid.UUID, roleID int) (*dto.InvitationListResponse, error) {
	var invitations []entity.Invitation
	var err error

	if roleID == entity.RoleIDNutritionist {
		invitations, err = u.invitationRepo.ListByNutritionist(u.db.WithContext(ctx), userID)
	} else {
		// Patients see invitations addressed to their own username.
		var profile *entity.Profile
		profile, err = u.profileRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err == nil {
			if profile == nil {
				return nil, ErrProfileNotFound
			}
			invitations, err = u.invitationRepo.ListByUsername(u.db.WithContext(ctx), profile.Username)
		}
	}
	if err != nil {
		u.log.Warnf("Failed to list invitations: %+v", err)
		return nil, err
	}

	return &dto.InvitationListResponse{
		Invitations: converter.InvitationsToResponses(invitations),
		Total:       len(invitations),
	}, nil
}

func (u *invitationUsecase) AcceptInvitation(ctx context.Context, patientID uuid.UUID, req *dto.AcceptInvitationRequest) (*dto.AcceptInvitationResponse, error) {
	invitation, err := u.resolvePending(ctx, req)
	if err != nil {
		return nil, err
	}

	// Expiry is evaluated here, at acceptance time.
	if invitation.IsExpired(time.Now()) {
		return nil, ErrInvitationExpired
	}

	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.Username != invitation.PatientUsername {
		return nil, ErrInvitationNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invitation.Accept()
	if err := u.invitationRepo.Update(tx, invitation); err != nil {
		u.log.Warnf("Failed to update invitation: %+v", err)
		return nil, err
	}

	// Relationship creation is idempotent: a pre-existing pair is fine.
	existing, err := u.relationshipRepo.FindByPair(tx, invitation.NutritionistID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return nil, err
	}
	if existing == nil {
		relationship := &entity.NutritionistPatient{
			NutritionistID: invitation.NutritionistID,
			PatientID:      patientID,
		}
		if err := u.relationshipRepo.Create(tx, relationship); err != nil && !isDuplicateKeyError(err, "udx_nutritionist_patient") {
			u.log.Warnf("Failed to create relationship: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogAction(tx, &patientID, entity.AuditActionInvitationAccept, entity.JSON{
		"invitation_id":   invitation.ID.String(),
		"nutritionist_id": invitation.NutritionistID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.AcceptInvitationResponse{Success: true}, nil
}

func (u *invitationUsecase) RejectInvitation(ctx context.Context, patientID uuid.UUID, req *dto.AcceptInvitationRequest) (*dto.AcceptInvitationResponse, error) {
	invitation, err := u.resolvePending(ctx, req)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.Username != invitation.PatientUsername {
		return nil, ErrInvitationNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invitation.Reject()
	if err := u.invitationRepo.Update(tx, invitation); err != nil {
		u.log.Warnf("Failed to update invitation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &patientID, entity.AuditActionInvitationReject, entity.JSON{
		"invitation_id": invitation.ID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.AcceptInvitationResponse{Success: true}, nil
}

// resolvePending loads a still-pending invitation by id or code. Accepted and
// rejected invitations resolve to not-found, which makes a double accept
// fail cleanly.
func (u *invitationUsecase) resolvePending(ctx context.Context, req *dto.AcceptInvitationRequest) (*entity.Invitation, error) {
	db := u.db.WithContext(ctx)

	switch {
	case req.InvitationID != "":
		id, err := uuid.Parse(req.InvitationID)
		if err != nil {
			return nil, ErrInvitationNotFound
		}
		invitation, err := u.invitationRepo.FindPendingByID(db, id)
		if err != nil {
			u.log.Warnf("Failed to find invitation: %+v", err)
			return nil, err
		}
		if invitation == nil {
			return nil, ErrInvitationNotFound
		}
		return invitation, nil

	case req.InvitationCode != "":
		// Codes are case-insensitive on input, stored uppercase.
		invitation, err := u.invitationRepo.FindPendingByCode(db, strings.ToUpper(strings.TrimSpace(req.InvitationCode)))
		if err != nil {
			u.log.Warnf("Failed to find invitation: %+v", err)
			return nil, err
		}
		if invitation == nil {
			return nil, ErrInvitationNotFound
		}
		return invitation, nil
	}

	return nil, ErrInvitationReference
}

// generateInvitationCode produces an 8 hex character uppercase code.
func generateInvitationCode() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08X", randomBytes), nil
}
