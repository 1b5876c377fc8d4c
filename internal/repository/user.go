package repository

import (
	"context"
	"errors"
	"strings"

	"societyhub/internal/model"

	"gorm.io/gorm"
)

// IUserRepository defines user persistence used by authentication
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	ListAudience(ctx context.Context, societyID uint, roles []string) ([]uint, error)
	ListMemberIDs(ctx context.Context, societyID uint) ([]uint, error)
}

// UserRepository implements user persistence
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func linksByID(db *gorm.DB) *gorm.DB { return db.Order("id") }

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("AdminSocieties").Create(user).Error
}

// FindByID returns the user with admin-society links in link order, or nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.first(ctx, "phone = ?", strings.TrimSpace(phone))
}

// FindByIdentifier matches an email when the identifier contains '@', otherwise a phone.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return r.first(ctx, "email = ?", strings.ToLower(identifier))
	}
	return r.first(ctx, "phone = ?", identifier)
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("AdminSocieties", linksByID).
		Where(query, arg).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).
		Preload("AdminSocieties", linksByID).
		Where("role = ?", role).
		Order("id").
		Find(&users).Error
	return users, err
}

// ListAudience returns ids of active users of a society having one of roles.
func (r *UserRepository) ListAudience(ctx context.Context, societyID uint, roles []string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("society_id = ? AND is_active = ? AND role IN ?", societyID, true, roles).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// ListMemberIDs returns every user whose row points at societyID, active or not.
func (r *UserRepository) ListMemberIDs(ctx context.Context, societyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("society_id = ?", societyID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}
