package repository

import (
	"errors"

	"nutritrack-backend/internal/domain/entity"
	domainRepo "nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invitationRepository struct{}

func NewInvitationRepository() domainRepo.InvitationRepository {
	return &invitationRepository{}
}

func (r *invitationRepository) Create(db *gorm.DB, invitation *entity.Invitation) error {
	return db.Create(invitation).Error
}

func (r *invitationRepository) FindPendingByID(db *gorm.DB, id uuid.UUID) (*entity.Invitation, error) {
	var invitation entity.Invitation
	err := db.Where("id = ? AND status = ?", id, entity.InvitationStatusPending).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindPendingByCode(db *gorm.DB, code string) (*entity.Invitation, error) {
	var invitation entity.Invitation
	err := db.Where("invitation_code = ? AND status = ?", code, entity.InvitationStatusPending).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindPendingByNutritionistAndUsername(db *gorm.DB, nutritionistID uuid.UUID, username string) (*entity.Invitation, error) {
	var invitation entity.Invitation
	err := db.Where("nutritionist_id = ? AND patient_username = ? AND status = ?",
		nutritionistID, username, entity.InvitationStatusPending).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) ListByNutritionist(db *gorm.DB, nutritionistID uuid.UUID) ([]entity.Invitation, error) {
	var invitations []entity.Invitation
	err := db.Where("nutritionist_id = ?", nutritionistID).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *invitationRepository) ListByUsername(db *gorm.DB, username string) ([]entity.Invitation, error) {
	var invitations []entity.Invitation
	err := db.Preload("Nutritionist").
		Where("patient_username = ?", username).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *invitationRepository) Update(db *gorm.DB, invitation *entity.Invitation) error {
	return db.Save(invitation).Error
}
