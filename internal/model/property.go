package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Building struct {
	Base
	SocietyOwned
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
	Floors int    `gorm:"not null;default:0" json:"floors"`

	Flats []Flat `gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE" json:"flats,omitempty"`
}

func (b *Building) BeforeSave(tx *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return invalidf("building name is required")
	}
	if b.Floors < 0 {
		return invalidf("floors cannot be negative")
	}
	return nil
}

type Flat struct {
	Base
	SocietyOwned
	BuildingID uint   `gorm:"not null;uniqueIndex:idx_flat_building_number" json:"building_id"`
	Number     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_flat_building_number" json:"number"`
	Floor      int    `json:"floor"`
	OwnerID    *uint  `gorm:"index" json:"owner_id,omitempty"`

	Owner    *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

func (f *Flat) OwnerColumn(role string) string {
	if role == RoleOwner {
		return "owner_id"
	}
	return ""
}

func (f *Flat) BeforeSave(tx *gorm.DB) error {
	f.Number = strings.TrimSpace(f.Number)
	if f.Number == "" {
		return invalidf("flat number is required")
	}
	if f.BuildingID == 0 {
		return invalidf("building_id is required")
	}
	return nil
}

// Agreement is a rent agreement between a flat's owner and a tenant.
// Overlapping agreements for the same flat are not rejected here.
type Agreement struct {
	Base
	SocietyOwned
	FlatID        uint      `gorm:"not null;index" json:"flat_id"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	TenantID      uint      `gorm:"not null;index" json:"tenant_id"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	RentAmount    float64   `gorm:"type:numeric(12,2);not null;default:0" json:"rent_amount"`
	DepositAmount float64   `gorm:"type:numeric(12,2);not null;default:0" json:"deposit_amount"`
	DocumentURL   string    `gorm:"type:varchar(500)" json:"document_url"`

	Flat   *Flat `gorm:"foreignKey:FlatID;constraint:OnDelete:CASCADE" json:"flat,omitempty"`
	Owner  *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tenant *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (a *Agreement) OwnerColumn(role string) string {
	switch role {
	case RoleOwner:
		return "owner_id"
	case RoleTenant, RoleResident:
		return "tenant_id"
	}
	return ""
}

func (a *Agreement) BeforeSave(tx *gorm.DB) error {
	if a.FlatID == 0 || a.OwnerID == 0 || a.TenantID == 0 {
		return invalidf("flat_id, owner_id and tenant_id are required")
	}
	if a.StartDate.IsZero() || a.EndDate.IsZero() {
		return invalidf("start_date and end_date are required")
	}
	if !a.EndDate.After(a.StartDate) {
		return invalidf("end_date must be after start_date")
	}
	if a.RentAmount < 0 || a.DepositAmount < 0 {
		return invalidf("amounts cannot be negative")
	}
	return nil
}
