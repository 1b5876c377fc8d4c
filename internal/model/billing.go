package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	BillStatusPending = "pending"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

var (
	BillTypes    = []string{"maintenance", "electricity", "water", "parking", "other"}
	BillStatuses = []string{BillStatusPending, BillStatusPaid, BillStatusOverdue}
)

type Bill struct {
	Base
	SocietyOwned
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	FlatID      *uint      `gorm:"index" json:"flat_id,omitempty"`
	Type        string     `gorm:"type:varchar(20);not null" json:"type"`
	Amount      float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Flat *Flat `gorm:"foreignKey:FlatID;constraint:OnDelete:SET NULL" json:"flat,omitempty"`
}

func (b *Bill) OwnerColumn(string) string { return "user_id" }

func (b *Bill) BeforeSave(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BillStatusPending
	}
	if !oneOf(b.Type, BillTypes...) {
		return invalidf("invalid bill type %q", b.Type)
	}
	if !oneOf(b.Status, BillStatuses...) {
		return invalidf("invalid bill status %q", b.Status)
	}
	if b.UserID == 0 {
		return invalidf("user_id is required")
	}
	if b.Amount < 0 {
		return invalidf("amount cannot be negative")
	}
	switch {
	case b.Status == BillStatusPaid && b.PaidAt == nil:
		now := time.Now()
		b.PaidAt = &now
	case b.Status != BillStatusPaid:
		b.PaidAt = nil
	}
	return nil
}

const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

var (
	ComplaintTypes    = []string{"plumbing", "electrical", "security", "cleaning", "maintenance", "other"}
	ComplaintStatuses = []string{ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusClosed}
)

type Complaint struct {
	Base
	SocietyOwned
	RaisedBy    uint   `gorm:"not null;index" json:"raised_by"`
	AssignedTo  *uint  `gorm:"index" json:"assigned_to,omitempty"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"type:varchar(20);not null;default:'other'" json:"type"`
	Status      string `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	Raiser   *User `gorm:"foreignKey:RaisedBy;constraint:OnDelete:CASCADE" json:"raiser,omitempty"`
	Assignee *User `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
}

func (c *Complaint) OwnerColumn(string) string { return "raised_by" }

func (c *Complaint) BeforeSave(tx *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Type == "" {
		c.Type = "other"
	}
	if c.Status == "" {
		c.Status = ComplaintStatusOpen
	}
	if c.Title == "" {
		return invalidf("title is required")
	}
	if !oneOf(c.Type, ComplaintTypes...) {
		return invalidf("invalid complaint type %q", c.Type)
	}
	if !oneOf(c.Status, ComplaintStatuses...) {
		return invalidf("invalid complaint status %q", c.Status)
	}
	return nil
}
