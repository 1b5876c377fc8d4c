package service

import (
	"context"
	"fmt"

	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/pkg/generic"
)

// NoticeService publishes notices and resolves their recipients
type NoticeService struct {
	notices repository.INoticeRepository
	users   repository.IUserRepository
}

func NewNoticeService(notices repository.INoticeRepository, users repository.IUserRepository) *NoticeService {
	return &NoticeService{notices: notices, users: users}
}

func audienceRoles(audience string) []string {
	switch audience {
	case model.AudienceOwners:
		return []string{model.RoleOwner}
	case model.AudienceTenants:
		return []string{model.RoleTenant, model.RoleResident}
	default:
		return model.SocietyMemberRoles
	}
}

// Create stores the notice and one recipient row per targeted member of the
// caller's society. For the "users" audience only listed ids that belong to
// the society are kept.
func (s *NoticeService) Create(ctx context.Context, sc generic.Scope, req *model.NoticeRequest) (*model.Notice, error) {
	if sc.SocietyID == 0 {
		return nil, generic.ErrOutOfScope
	}
	notice := &model.Notice{
		CreatedBy: sc.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Audience:  req.Audience,
	}
	if notice.Audience == "" {
		notice.Audience = model.AudienceAll
	}
	notice.SocietyID = sc.SocietyID

	members, err := s.users.ListAudience(ctx, sc.SocietyID, audienceRoles(notice.Audience))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audience: %w", err)
	}
	recipients := members
	if notice.Audience == model.AudienceUsers {
		recipients = intersect(members, req.UserIDs)
		if len(recipients) == 0 {
			return nil, fmt.Errorf("%w: user_ids must name members of the society", model.ErrInvalid)
		}
	}

	if err := s.notices.CreateWithRecipients(ctx, notice, recipients); err != nil {
		return nil, err
	}
	return notice, nil
}

func (s *NoticeService) ListForUser(ctx context.Context, sc generic.Scope) ([]model.ResidentNotice, error) {
	if sc.SocietyID == 0 {
		return nil, generic.ErrOutOfScope
	}
	return s.notices.ListForUser(ctx, sc.SocietyID, sc.UserID)
}

func (s *NoticeService) MarkRead(ctx context.Context, sc generic.Scope, noticeID uint) error {
	ok, err := s.notices.MarkRead(ctx, noticeID, sc.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return generic.ErrNotFound
	}
	return nil
}

func intersect(members, wanted []uint) []uint {
	set := make(map[uint]struct{}, len(members))
	for _, id := range members {
		set[id] = struct{}{}
	}
	out := make([]uint, 0, len(wanted))
	for _, id := range wanted {
		if _, ok := set[id]; ok {
			out = append(out, id)
			delete(set, id)
		}
	}
	return out
}
