package repository

import (
	"context"

	"societyhub/internal/model"

	"gorm.io/gorm"
)

// IAdminSocietyRepository manages admin to society links
type IAdminSocietyRepository interface {
	Link(ctx context.Context, userID, societyID uint) (*model.AdminSociety, error)
	Unlink(ctx context.Context, userID, societyID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]model.AdminSociety, error)
	ListAdminIDs(ctx context.Context, societyID uint) ([]uint, error)
	WithTx(tx *gorm.DB) IAdminSocietyRepository
}

type AdminSocietyRepository struct {
	db *gorm.DB
}

func NewAdminSocietyRepository(db *gorm.DB) IAdminSocietyRepository {
	return &AdminSocietyRepository{db: db}
}

func (r *AdminSocietyRepository) WithTx(tx *gorm.DB) IAdminSocietyRepository {
	return &AdminSocietyRepository{db: tx}
}

func (r *AdminSocietyRepository) Link(ctx context.Context, userID, societyID uint) (*model.AdminSociety, error) {
	link := &model.AdminSociety{UserID: userID, SocietyID: societyID}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// Unlink reports whether a link was removed.
func (r *AdminSocietyRepository) Unlink(ctx context.Context, userID, societyID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND society_id = ?", userID, societyID).
		Delete(&model.AdminSociety{})
	return res.RowsAffected > 0, res.Error
}

func (r *AdminSocietyRepository) ListByUser(ctx context.Context, userID uint) ([]model.AdminSociety, error) {
	links := []model.AdminSociety{}
	err := r.db.WithContext(ctx).
		Preload("Society").
		Where("user_id = ?", userID).
		Order("id").
		Find(&links).Error
	return links, err
}

func (r *AdminSocietyRepository) ListAdminIDs(ctx context.Context, societyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.AdminSociety{}).
		Where("society_id = ?", societyID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
