package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Society is the tenant-isolation boundary: every resident-facing row hangs off one.
type Society struct {
	Base
	Name               string `gorm:"type:varchar(150);not null" json:"name"`
	Address            string `gorm:"type:varchar(255)" json:"address"`
	City               string `gorm:"type:varchar(100)" json:"city"`
	State              string `gorm:"type:varchar(100)" json:"state"`
	Pincode            string `gorm:"type:varchar(12)" json:"pincode"`
	SubscriptionPlanID *uint  `json:"subscription_plan_id,omitempty"`
	CreatedBy          *uint  `json:"created_by,omitempty"`

	SubscriptionPlan *SubscriptionPlan `gorm:"foreignKey:SubscriptionPlanID;constraint:OnDelete:SET NULL" json:"subscription_plan,omitempty"`
	Users            []User            `gorm:"foreignKey:SocietyID;constraint:OnDelete:SET NULL" json:"-"`
	Buildings        []Building        `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"buildings,omitempty"`
	Flats            []Flat            `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Documents        []Document        `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Complaints       []Complaint       `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Notices          []Notice          `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Helplines        []Helpline        `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Bills            []Bill            `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Agreements       []Agreement       `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Cameras          []Camera          `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Visitors         []Visitor         `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Society) BeforeSave(tx *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return invalidf("society name is required")
	}
	return nil
}

// SubscriptionPlan is reference data assigned to societies by a superadmin.
type SubscriptionPlan struct {
	Base
	Name         string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Price        float64 `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	MaxFlats     int     `gorm:"not null;default:0" json:"max_flats"`
	DurationDays int     `gorm:"not null;default:30" json:"duration_days"`
	Description  string  `gorm:"type:text" json:"description"`
}

func (p *SubscriptionPlan) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalidf("plan name is required")
	}
	if p.Price < 0 {
		return invalidf("price cannot be negative")
	}
	if p.MaxFlats < 0 || p.DurationDays < 0 {
		return invalidf("plan limits cannot be negative")
	}
	return nil
}

// SuperadminLog records superadmin mutations. It is stored either in Postgres
// or in MongoDB, hence both tag sets.
type SuperadminLog struct {
	ID           uint      `gorm:"primaryKey" bson:"-" json:"id,omitempty"`
	SuperadminID uint      `gorm:"not null;index" bson:"superadminId" json:"superadmin_id"`
	Action       string    `gorm:"type:varchar(50);not null" bson:"action" json:"action"`
	TargetType   string    `gorm:"type:varchar(50)" bson:"targetType" json:"target_type"`
	TargetID     uint      `bson:"targetId" json:"target_id"`
	Details      string    `gorm:"type:text" bson:"details" json:"details,omitempty"`
	CreatedAt    time.Time `gorm:"index" bson:"createdAt" json:"created_at"`
}
