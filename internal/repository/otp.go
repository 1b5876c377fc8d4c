package repository

import (
	"context"
	"errors"

	"societyhub/internal/model"

	"gorm.io/gorm"
)

// IOTPRepository defines one-time code persistence
type IOTPRepository interface {
	Create(ctx context.Context, otp *model.OTP) error
	FindLatest(ctx context.Context, phone, code string) (*model.OTP, error)
	MarkUsed(ctx context.Context, id uint) (bool, error)
}

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) IOTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(ctx context.Context, otp *model.OTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

// FindLatest returns the newest record for phone and code, or nil.
func (r *OTPRepository) FindLatest(ctx context.Context, phone, code string) (*model.OTP, error) {
	var otp model.OTP
	err := r.db.WithContext(ctx).
		Where("phone = ? AND code = ?", phone, code).
		Order("id DESC").
		Take(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

// MarkUsed flips used to true only if it is still false. It returns false
// when another caller consumed the code first.
func (r *OTPRepository) MarkUsed(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OTP{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
