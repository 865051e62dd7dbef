package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationStatus represents the lifecycle state of a patient invitation
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
)

// Invitation links a nutritionist to a patient username before the
// relationship exists. The partial unique index keeps at most one pending
// invitation per (nutritionist, username) pair.
type Invitation struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	NutritionistID  uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:udx_invitations_pending,where:status = 'pending'" json:"nutritionist_id"`
	PatientUsername string           `gorm:"type:varchar(30);not null;index;uniqueIndex:udx_invitations_pending,where:status = 'pending'" json:"patient_username"`
	InvitationCode  string           `gorm:"type:varchar(16);uniqueIndex;not null" json:"invitation_code"`
	Status          InvitationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ExpiresAt       time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Nutritionist User `gorm:"foreignKey:NutritionistID" json:"nutritionist,omitempty"`
}

func (Invitation) TableName() string {
	return "patient_invitations"
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// IsExpired is evaluated lazily at acceptance time; there is no sweeper.
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invitation) Accept() {
	i.Status = InvitationStatusAccepted
}

func (i *Invitation) Reject() {
	i.Status = InvitationStatusRejected
}
