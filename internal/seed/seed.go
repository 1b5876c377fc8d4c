// Package seed loads a small demo society for local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"societyhub/internal/model"
	"societyhub/pkg/timer"
	"societyhub/pkg/util"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is set on every seeded account.
const DefaultPassword = "password123"

// Result lists what Run created.
type Result struct {
	Society   *model.Society
	Admin     *model.User
	Owner     *model.User
	Tenant    *model.User
	Flats     []model.Flat
	Agreement *model.Agreement
}

// Run creates one society with a building, two flats, an admin, an owner and
// a tenant with a rent agreement. Everything is written in one transaction.
func Run(ctx context.Context, db *gorm.DB, now time.Time) (*Result, error) {
	hash, err := util.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	sw := timer.NewStopwatch("seed")

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		create := func(what string, v interface{}) error {
			if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
				return fmt.Errorf("failed to seed %s: %w", what, err)
			}
			return nil
		}

		res.Society = &model.Society{Name: "Green Meadows", Address: "12 Park Road", City: "Pune", State: "MH", Pincode: "411001"}
		if err := create("society", res.Society); err != nil {
			return err
		}
		sid := res.Society.ID

		user := func(name, phone, role string) *model.User {
			u := &model.User{Name: name, Phone: phone, PasswordHash: hash, Role: role, IsActive: true}
			u.SetSocietyID(sid)
			return u
		}
		res.Admin = user("Society Admin", "+919000000001", model.RoleAdmin)
		res.Owner = user("Flat Owner", "+919000000002", model.RoleOwner)
		res.Tenant = user("Flat Tenant", "+919000000003", model.RoleTenant)
		for _, u := range []*model.User{res.Admin, res.Owner, res.Tenant} {
			if err := create("user "+u.Name, u); err != nil {
				return err
			}
		}
		if err := create("admin link", &model.AdminSociety{UserID: res.Admin.ID, SocietyID: sid}); err != nil {
			return err
		}
		sw.Lap("users")

		building := &model.Building{Name: "Tower A", Floors: 10}
		building.SocietyID = sid
		if err := create("building", building); err != nil {
			return err
		}

		for i, number := range []string{"A-101", "A-102"} {
			flat := model.Flat{BuildingID: building.ID, Number: number, Floor: 1}
			flat.SocietyID = sid
			if i == 0 {
				flat.OwnerID = &res.Owner.ID
			}
			if err := create("flat "+number, &flat); err != nil {
				return err
			}
			res.Flats = append(res.Flats, flat)
		}

		start := now.Truncate(24 * time.Hour)
		res.Agreement = &model.Agreement{
			FlatID:        res.Flats[0].ID,
			OwnerID:       res.Owner.ID,
			TenantID:      res.Tenant.ID,
			StartDate:     start,
			EndDate:       start.AddDate(0, 11, 0),
			RentAmount:    25000,
			DepositAmount: 100000,
		}
		res.Agreement.SocietyID = sid
		if err := create("agreement", res.Agreement); err != nil {
			return err
		}
		sw.Lap("property")
		res.Tenant.FlatID = &res.Flats[0].ID
		return tx.Model(res.Tenant).UpdateColumn("flat_id", res.Flats[0].ID).Error
	})
	if err != nil {
		return nil, err
	}

	sw.Total()
	log.Info().Uint("society_id", res.Society.ID).Msg("Seeded demo society")
	return res, nil
}
