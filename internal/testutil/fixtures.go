package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"societyhub/internal/model"
	"societyhub/pkg/util"

	"gorm.io/gorm"
)

var phoneCounter atomic.Int64

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *gorm.DB
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

// NextPhone returns a phone number unique within the test binary.
func NextPhone() string {
	return fmt.Sprintf("+9190000%05d", phoneCounter.Add(1))
}

func (f *Fixtures) CreateSociety(name string) *model.Society {
	f.t.Helper()
	s := &model.Society{Name: name, City: "Pune", State: "MH"}
	if err := f.db.Create(s).Error; err != nil {
		f.t.Fatalf("failed to create society: %v", err)
	}
	return s
}

// CreateUser creates a user with password "password123". A zero societyID leaves it unset.
func (f *Fixtures) CreateUser(name, role string, societyID uint) *model.User {
	f.t.Helper()
	hash, err := util.HashPassword("password123")
	if err != nil {
		f.t.Fatalf("failed to hash password: %v", err)
	}
	u := &model.User{
		Name:         name,
		Phone:        NextPhone(),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	u.SetSocietyID(societyID)
	if err := f.db.Create(u).Error; err != nil {
		f.t.Fatalf("failed to create user: %v", err)
	}
	return u
}

// CreateAdmin creates an admin linked to each society in order.
func (f *Fixtures) CreateAdmin(name string, societyIDs ...uint) *model.User {
	f.t.Helper()
	admin := f.CreateUser(name, model.RoleAdmin, 0)
	for _, id := range societyIDs {
		link := &model.AdminSociety{UserID: admin.ID, SocietyID: id}
		if err := f.db.Create(link).Error; err != nil {
			f.t.Fatalf("failed to link admin to society: %v", err)
		}
	}
	return admin
}

func (f *Fixtures) CreateBuilding(societyID uint, name string) *model.Building {
	f.t.Helper()
	b := &model.Building{Name: name, Floors: 4}
	b.SocietyID = societyID
	if err := f.db.Create(b).Error; err != nil {
		f.t.Fatalf("failed to create building: %v", err)
	}
	return b
}

func (f *Fixtures) CreateFlat(societyID, buildingID uint, number string, ownerID *uint) *model.Flat {
	f.t.Helper()
	flat := &model.Flat{BuildingID: buildingID, Number: number, Floor: 1, OwnerID: ownerID}
	flat.SocietyID = societyID
	if err := f.db.Create(flat).Error; err != nil {
		f.t.Fatalf("failed to create flat: %v", err)
	}
	return flat
}

func (f *Fixtures) CreateHelpline(societyID uint, name string) *model.Helpline {
	f.t.Helper()
	h := &model.Helpline{Name: name, Phone: "100", Category: "emergency"}
	h.SocietyID = societyID
	if err := f.db.Create(h).Error; err != nil {
		f.t.Fatalf("failed to create helpline: %v", err)
	}
	return h
}

func (f *Fixtures) CreateComplaint(societyID, raisedBy uint, title string) *model.Complaint {
	f.t.Helper()
	c := &model.Complaint{RaisedBy: raisedBy, Title: title, Type: "plumbing"}
	c.SocietyID = societyID
	if err := f.db.Create(c).Error; err != nil {
		f.t.Fatalf("failed to create complaint: %v", err)
	}
	return c
}
