package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	RoleSuperadmin    = "superadmin"
	RoleAdmin         = "admin"
	RoleOwner         = "owner"
	RoleTenant        = "tenant"
	RoleResident      = "resident"
	RoleSecurityGuard = "security_guard"
)

// Roles lists every role a user row may carry.
var Roles = []string{RoleSuperadmin, RoleAdmin, RoleOwner, RoleTenant, RoleResident, RoleSecurityGuard}

// SocietyMemberRoles are the roles an admin may create inside their society.
var SocietyMemberRoles = []string{RoleOwner, RoleTenant, RoleResident, RoleSecurityGuard}

func IsValidRole(role string) bool { return oneOf(role, Roles...) }

// IsPersonalRole reports whether the role only sees rows it owns.
func IsPersonalRole(role string) bool {
	return role == RoleOwner || role == RoleTenant || role == RoleResident
}

type User struct {
	Base
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	Email        *string `gorm:"type:varchar(254);uniqueIndex" json:"email,omitempty"`
	Phone        string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	PasswordHash string  `gorm:"type:varchar(100)" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;index" json:"role"`
	SocietyID    *uint   `gorm:"index" json:"society_id,omitempty"`
	FlatID       *uint   `json:"flat_id,omitempty"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`

	AdminSocieties []AdminSociety `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"admin_societies,omitempty"`
}

func (u *User) GetSocietyID() uint {
	if u.SocietyID == nil {
		return 0
	}
	return *u.SocietyID
}

func (u *User) SetSocietyID(id uint) {
	if id == 0 {
		u.SocietyID = nil
		return
	}
	u.SocietyID = &id
}

// OwnerColumn limits personal roles to their own user row.
func (u *User) OwnerColumn(string) string { return "id" }

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Phone = strings.TrimSpace(u.Phone)
	if u.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*u.Email))
		if e == "" {
			u.Email = nil
		} else {
			u.Email = &e
		}
	}
	if u.Name == "" {
		return invalidf("name is required")
	}
	if u.Phone == "" {
		return invalidf("phone is required")
	}
	if !IsValidRole(u.Role) {
		return invalidf("invalid role %q", u.Role)
	}
	return nil
}

// AdminSociety links an admin user to a society they administer.
type AdminSociety struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_admin_society" json:"user_id"`
	SocietyID uint      `gorm:"not null;uniqueIndex:idx_admin_society" json:"society_id"`
	CreatedAt time.Time `json:"created_at"`

	Society *Society `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"society,omitempty"`
}
