package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every model-level validation failure.
var ErrInvalid = errors.New("validation failed")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...)
}

// Base carries the primary key and timestamps shared by most tables.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) GetID() uint   { return b.ID }
func (b *Base) SetID(id uint) { b.ID = id }

func (b *Base) GetCreatedAt() time.Time     { return b.CreatedAt }
func (b *Base) SetCreatedAt(at time.Time) { b.CreatedAt = at }

// SocietyOwned marks a row as belonging to exactly one society.
type SocietyOwned struct {
	SocietyID uint `gorm:"not null;index" json:"society_id"`
}

func (s *SocietyOwned) GetSocietyID() uint   { return s.SocietyID }
func (s *SocietyOwned) SetSocietyID(id uint) { s.SocietyID = id }

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// All returns every persisted model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&SubscriptionPlan{},
		&Society{},
		&User{},
		&AdminSociety{},
		&Building{},
		&Flat{},
		&Agreement{},
		&Bill{},
		&Complaint{},
		&Notice{},
		&NoticeRecipient{},
		&Document{},
		&Helpline{},
		&Camera{},
		&Visitor{},
		&OTP{},
		&SuperadminLog{},
	}
}
