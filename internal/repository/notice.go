package repository

import (
	"context"
	"errors"
	"time"

	"societyhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// INoticeRepository stores notices together with their per-user recipient rows
type INoticeRepository interface {
	CreateWithRecipients(ctx context.Context, notice *model.Notice, userIDs []uint) error
	ListForUser(ctx context.Context, societyID, userID uint) ([]model.ResidentNotice, error)
	MarkRead(ctx context.Context, noticeID, userID uint) (bool, error)
}

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) INoticeRepository {
	return &NoticeRepository{db: db}
}

// CreateWithRecipients writes the notice and its recipients in one transaction.
func (r *NoticeRepository) CreateWithRecipients(ctx context.Context, notice *model.Notice, userIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(notice).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		recipients := make([]model.NoticeRecipient, 0, len(userIDs))
		for _, id := range userIDs {
			recipients = append(recipients, model.NoticeRecipient{NoticeID: notice.ID, UserID: id})
		}
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(recipients, 200).Error; err != nil {
			return err
		}
		notice.Recipients = recipients
		return nil
	})
}

// ListForUser returns the notices addressed to userID within a society, newest first.
func (r *NoticeRepository) ListForUser(ctx context.Context, societyID, userID uint) ([]model.ResidentNotice, error) {
	var rows []model.NoticeRecipient
	err := r.db.WithContext(ctx).
		Joins("Notice").
		Where("notice_recipients.user_id = ? AND \"Notice\".society_id = ?", userID, societyID).
		Order("notice_recipients.notice_id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.ResidentNotice, 0, len(rows))
	for _, row := range rows {
		if row.Notice == nil {
			continue
		}
		out = append(out, model.ResidentNotice{Notice: *row.Notice, Read: row.Read, ReadAt: row.ReadAt})
	}
	return out, nil
}

// MarkRead reports false when userID is not a recipient of the notice.
func (r *NoticeRepository) MarkRead(ctx context.Context, noticeID, userID uint) (bool, error) {
	var row model.NoticeRecipient
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND user_id = ?", noticeID, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if row.Read {
		return true, nil
	}
	now := time.Now()
	err = r.db.WithContext(ctx).Model(&row).Updates(map[string]interface{}{"read": true, "read_at": now}).Error
	return err == nil, err
}
