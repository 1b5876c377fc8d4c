package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"societyhub/internal/model"
	"societyhub/pkg/generic"
	"societyhub/pkg/util"

	"gorm.io/gorm"
)

// UserService manages the members of a society on behalf of its admin
type UserService struct {
	users *generic.ScopedRepository[model.User, *model.User]
	flats *generic.ScopedRepository[model.Flat, *model.Flat]
	auth  *AuthService
}

func NewUserService(db *gorm.DB, auth *AuthService) *UserService {
	return &UserService{
		users: generic.NewScopedRepository[model.User](db),
		flats: generic.NewScopedRepository[model.Flat](db),
		auth:  auth,
	}
}

var members = generic.Where("role IN ?", model.SocietyMemberRoles)

// NewUser builds an unsaved user from a request, hashing the password when one is given.
func NewUser(req *model.CreateUserRequest, role string) (*model.User, error) {
	if err := util.ValidatePhone(req.Phone); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalid, err)
	}
	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
		Role:     role,
		FlatID:   req.FlatID,
		IsActive: true,
	}
	if req.Password != "" {
		hash, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalid, err)
		}
		user.PasswordHash = hash
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, sc generic.Scope, role string) ([]model.User, error) {
	queries := []generic.Query{members}
	if role != "" {
		queries = append(queries, generic.Where("role = ?", role))
	}
	return s.users.List(ctx, sc, queries...)
}

func (s *UserService) Get(ctx context.Context, sc generic.Scope, id uint) (*model.User, error) {
	return s.users.Get(ctx, sc, id, members)
}

// Create adds an owner, tenant, resident or guard to the caller's society.
func (s *UserService) Create(ctx context.Context, sc generic.Scope, req *model.CreateUserRequest) (*model.User, error) {
	if !isMemberRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be one of %s", model.ErrInvalid, strings.Join(model.SocietyMemberRoles, ", "))
	}
	if err := s.checkFlat(ctx, sc, req.FlatID); err != nil {
		return nil, err
	}
	user, err := NewUser(req, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, sc, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, sc generic.Scope, id uint, req *model.UpdateUserRequest) (*model.User, error) {
	if _, err := s.Get(ctx, sc, id); err != nil {
		return nil, err
	}
	if err := s.checkFlat(ctx, sc, req.FlatID); err != nil {
		return nil, err
	}
	var hash string
	if req.Password != nil {
		h, err := util.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalid, err)
		}
		hash = h
	}
	if req.Phone != nil {
		if err := util.ValidatePhone(*req.Phone); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalid, err)
		}
	}

	user, err := s.users.Update(ctx, sc, id, func(u *model.User) error {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = req.Email
		}
		if req.Phone != nil {
			u.Phone = *req.Phone
		}
		if req.FlatID != nil {
			u.FlatID = req.FlatID
		}
		if req.IsActive != nil {
			u.IsActive = *req.IsActive
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.auth.InvalidateUser(ctx, id)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, sc generic.Scope, id uint) error {
	if _, err := s.Get(ctx, sc, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, sc, id); err != nil {
		return err
	}
	s.auth.InvalidateUser(ctx, id)
	return nil
}

func (s *UserService) checkFlat(ctx context.Context, sc generic.Scope, flatID *uint) error {
	if flatID == nil {
		return nil
	}
	if _, err := s.flats.Get(ctx, sc, *flatID); err != nil {
		if errors.Is(err, generic.ErrNotFound) {
			return fmt.Errorf("%w: flat %d not found in society", model.ErrInvalid, *flatID)
		}
		return err
	}
	return nil
}

func isMemberRole(role string) bool {
	for _, r := range model.SocietyMemberRoles {
		if r == role {
			return true
		}
	}
	return false
}
