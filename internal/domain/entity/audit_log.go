package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JSON is the metadata payload attached to audit entries.
type JSON = datatypes.JSONMap

// AuditLog records one security-relevant action. Rows are written inside the
// transaction of the action they describe and never updated.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

const (
	AuditActionUserRegister     = "user.register"
	AuditActionProfileUpdate    = "profile.update"
	AuditActionInvitationSend   = "invitation.send"
	AuditActionInvitationAccept = "invitation.accept"
	AuditActionInvitationReject = "invitation.reject"
	AuditActionPlanCreate       = "plan.create"
	AuditActionMealValidate     = "meal.validate"
	AuditActionChatSend         = "chat.send"
)
