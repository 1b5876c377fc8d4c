package service

import (
	"context"

	"societyhub/internal/model"
	"societyhub/internal/repository"

	"github.com/rs/zerolog/log"
)

// AuditService records superadmin actions. Failures are logged and never
// fail the request that triggered them.
type AuditService struct {
	repo repository.IAuditLogRepository
}

func NewAuditService(repo repository.IAuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, actorID uint, action, targetType string, targetID uint, details string) {
	entry := &model.SuperadminLog{
		SuperadminID: actorID,
		Action:       action,
		TargetType:   targetType,
		TargetID:     targetID,
		Details:      details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Uint("superadmin_id", actorID).
			Str("action", action).
			Str("target_type", targetType).
			Uint("target_id", targetID).
			Msg("Failed to write superadmin log")
	}
}

func (s *AuditService) List(ctx context.Context, limit int) ([]model.SuperadminLog, error) {
	return s.repo.List(ctx, limit)
}
