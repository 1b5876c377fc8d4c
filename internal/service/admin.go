package service

import (
	"context"
	"errors"
	"fmt"

	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/pkg/generic"

	"gorm.io/gorm"
)

var ErrNotAdmin = errors.New("user is not an admin")

// AdminService lets superadmins manage admins and their society links
type AdminService struct {
	db        *gorm.DB
	users     repository.IUserRepository
	links     repository.IAdminSocietyRepository
	societies *generic.BaseRepository[model.Society, *model.Society]
	auth      *AuthService
	audit     *AuditService
}

func NewAdminService(db *gorm.DB, users repository.IUserRepository, links repository.IAdminSocietyRepository, auth *AuthService, audit *AuditService) *AdminService {
	return &AdminService{
		db:        db,
		users:     users,
		links:     links,
		societies: generic.NewBaseRepository[model.Society](db),
		auth:      auth,
		audit:     audit,
	}
}

func (s *AdminService) List(ctx context.Context) ([]model.User, error) {
	return s.users.ListByRole(ctx, model.RoleAdmin)
}

// Create adds an admin and links it to its first society in one transaction.
func (s *AdminService) Create(ctx context.Context, actorID uint, req *model.CreateAdminRequest) (*model.User, error) {
	if _, err := s.societies.GetByID(ctx, req.SocietyID); err != nil {
		if errors.Is(err, generic.ErrNotFound) {
			return nil, fmt.Errorf("%w: society %d not found", model.ErrInvalid, req.SocietyID)
		}
		return nil, err
	}
	user, err := NewUser(&req.CreateUserRequest, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	user.FlatID = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		link, err := s.links.WithTx(tx).Link(ctx, user.ID, req.SocietyID)
		if err != nil {
			return err
		}
		user.AdminSocieties = []model.AdminSociety{*link}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, "create", "admin", user.ID, fmt.Sprintf("linked to society %d", req.SocietyID))
	return user, nil
}

// CreateSuperadmin is used by the maintenance CLI.
func (s *AdminService) CreateSuperadmin(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	user, err := NewUser(req, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: password is required", model.ErrInvalid)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) Link(ctx context.Context, actorID, adminID, societyID uint) (*model.AdminSociety, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if _, err := s.societies.GetByID(ctx, societyID); err != nil {
		return nil, err
	}
	link, err := s.links.Link(ctx, adminID, societyID)
	if err != nil {
		return nil, err
	}
	s.auth.InvalidateUser(ctx, adminID)
	s.audit.Record(ctx, actorID, "link", "admin", adminID, fmt.Sprintf("society %d", societyID))
	return link, nil
}

func (s *AdminService) Unlink(ctx context.Context, actorID, adminID, societyID uint) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	removed, err := s.links.Unlink(ctx, adminID, societyID)
	if err != nil {
		return err
	}
	if !removed {
		return generic.ErrNotFound
	}
	s.auth.InvalidateUser(ctx, adminID)
	s.audit.Record(ctx, actorID, "unlink", "admin", adminID, fmt.Sprintf("society %d", societyID))
	return nil
}

// Societies lists an admin's links in link order; the first is the default
// active society.
func (s *AdminService) Societies(ctx context.Context, adminID uint) ([]model.AdminSociety, error) {
	return s.links.ListByUser(ctx, adminID)
}

func (s *AdminService) requireAdmin(ctx context.Context, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return generic.ErrNotFound
	}
	if user.Role != model.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}
