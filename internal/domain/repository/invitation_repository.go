package repository

import (
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindPending* resolve only rows still in pending status, so an already
// accepted or rejected invitation looks like "not found" to callers.
type InvitationRepository interface {
	Create(db *gorm.DB, invitation *entity.Invitation) error
	FindPendingByID(db *gorm.DB, id uuid.UUID) (*entity.Invitation, error)
	FindPendingByCode(db *gorm.DB, code string) (*entity.Invitation, error)
	FindPendingByNutritionistAndUsername(db *gorm.DB, nutritionistID uuid.UUID, username string) (*entity.Invitation, error)
	ListByNutritionist(db *gorm.DB, nutritionistID uuid.UUID) ([]entity.Invitation, error)
	ListByUsername(db *gorm.DB, username string) ([]entity.Invitation, error)
	Update(db *gorm.DB, invitation *entity.Invitation) error
}
