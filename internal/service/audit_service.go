package service

import (
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit rows on the caller's transaction handle, so an
// aborted action leaves no trail and a committed one always has it.
type AuditService interface {
	LogAction(tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{log: log, auditRepo: auditRepo}
}

func (s *auditService) LogAction(tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	err := s.auditRepo.Create(tx, &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	})
	if err != nil {
		s.log.WithError(err).Warnf("Failed to write audit entry for %s", action)
	}
	return err
}
