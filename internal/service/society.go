package service

import (
	"context"
	"fmt"

	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/pkg/generic"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SocietyService owns society lifecycle changes that affect cached users
type SocietyService struct {
	societies *generic.BaseRepository[model.Society, *model.Society]
	users     repository.IUserRepository
	links     repository.IAdminSocietyRepository
	auth      *AuthService
	audit     *AuditService
}

func NewSocietyService(db *gorm.DB, users repository.IUserRepository, links repository.IAdminSocietyRepository, auth *AuthService, audit *AuditService) *SocietyService {
	return &SocietyService{
		societies: generic.NewBaseRepository[model.Society](db),
		users:     users,
		links:     links,
		auth:      auth,
		audit:     audit,
	}
}

// Delete removes a society. Its admin links cascade and member rows lose
// their society, so every affected user is evicted from the auth cache and
// re-resolves its scope on the next request.
func (s *SocietyService) Delete(ctx context.Context, actorID, id uint) error {
	admins, err := s.links.ListAdminIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list society admins: %w", err)
	}
	members, err := s.users.ListMemberIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list society members: %w", err)
	}

	if err := s.societies.Delete(ctx, id); err != nil {
		return err
	}

	affected := append(admins, members...)
	for _, userID := range affected {
		s.auth.InvalidateUser(ctx, userID)
	}
	log.Info().Uint("society_id", id).Int("users_evicted", len(affected)).Msg("Society deleted")
	s.audit.Record(ctx, actorID, "delete", "society", id, "")
	return nil
}
