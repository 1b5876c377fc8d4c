package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	AudienceAll     = "all"
	AudienceOwners  = "owners"
	AudienceTenants = "tenants"
	AudienceUsers   = "users"
)

var NoticeAudiences = []string{AudienceAll, AudienceOwners, AudienceTenants, AudienceUsers}

// Notice fans out to one NoticeRecipient row per targeted user.
type Notice struct {
	Base
	SocietyOwned
	CreatedBy uint   `gorm:"not null" json:"created_by"`
	Title     string `gorm:"type:varchar(200);not null" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	Audience  string `gorm:"type:varchar(20);not null;default:'all'" json:"audience"`

	Recipients []NoticeRecipient `gorm:"foreignKey:NoticeID;constraint:OnDelete:CASCADE" json:"recipients,omitempty"`
}

// OwnerColumn hides notices from direct listing by personal roles; they read
// them through their recipient rows.
func (n *Notice) OwnerColumn(string) string { return "" }

func (n *Notice) BeforeSave(tx *gorm.DB) error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Audience == "" {
		n.Audience = AudienceAll
	}
	if n.Title == "" {
		return invalidf("title is required")
	}
	if !oneOf(n.Audience, NoticeAudiences...) {
		return invalidf("invalid audience %q", n.Audience)
	}
	return nil
}

type NoticeRecipient struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	NoticeID uint       `gorm:"not null;uniqueIndex:idx_notice_recipient" json:"notice_id"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_notice_recipient;index" json:"user_id"`
	Read     bool       `gorm:"not null;default:false" json:"read"`
	ReadAt   *time.Time `json:"read_at,omitempty"`

	Notice *Notice `gorm:"foreignKey:NoticeID" json:"notice,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Document struct {
	Base
	SocietyOwned
	UploadedBy uint   `gorm:"not null;index" json:"uploaded_by"`
	Title      string `gorm:"type:varchar(200);not null" json:"title"`
	Category   string `gorm:"type:varchar(50)" json:"category"`
	URL        string `gorm:"type:varchar(500);not null" json:"url"`

	Uploader *User `gorm:"foreignKey:UploadedBy;constraint:OnDelete:CASCADE" json:"-"`
}

func (d *Document) OwnerColumn(string) string { return "uploaded_by" }

func (d *Document) BeforeSave(tx *gorm.DB) error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return invalidf("title is required")
	}
	if strings.TrimSpace(d.URL) == "" {
		return invalidf("url is required")
	}
	return nil
}

type Helpline struct {
	Base
	SocietyOwned
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Phone    string `gorm:"type:varchar(20);not null" json:"phone"`
	Category string `gorm:"type:varchar(50)" json:"category"`
}

func (h *Helpline) BeforeSave(tx *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Phone = strings.TrimSpace(h.Phone)
	if h.Name == "" || h.Phone == "" {
		return invalidf("name and phone are required")
	}
	return nil
}
