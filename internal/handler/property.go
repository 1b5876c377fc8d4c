package handler

import (
	"context"
	"errors"
	"fmt"

	"societyhub/internal/model"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// inScope fails with ErrInvalid when the referenced row is not reachable
// through sc, so a body can never point at another society's records.
func inScope[T any, PT interface {
	*T
	generic.SocietyScoped
}](ctx context.Context, repo *generic.ScopedRepository[T, PT], sc generic.Scope, id uint, field string) error {
	if _, err := repo.Get(ctx, societyWide(sc), id); err != nil {
		if errors.Is(err, generic.ErrNotFound) {
			return fmt.Errorf("%w: %s %d does not belong to the society", model.ErrInvalid, field, id)
		}
		return err
	}
	return nil
}

// societyWide drops personal filtering; references are checked against the
// whole society, not only rows the caller owns.
func societyWide(sc generic.Scope) generic.Scope {
	sc.Personal = false
	return sc
}

func NewBuildingResource(db *gorm.DB) *Resource[model.Building, *model.Building] {
	return NewResource[model.Building](db)
}

func NewFlatResource(db *gorm.DB) *Resource[model.Flat, *model.Flat] {
	r := NewResource[model.Flat](db, "building_id", "owner_id")
	r.Preloads = []string{"Building"}
	buildings := generic.NewScopedRepository[model.Building](db)
	users := generic.NewScopedRepository[model.User](db)
	check := func(c *gin.Context, sc generic.Scope, f *model.Flat) error {
		f.Building, f.Owner = nil, nil
		if err := inScope(c.Request.Context(), buildings, sc, f.BuildingID, "building"); err != nil {
			return err
		}
		if f.OwnerID != nil {
			return inScope(c.Request.Context(), users, sc, *f.OwnerID, "owner")
		}
		return nil
	}
	r.BeforeCreate, r.BeforeUpdate = check, check
	return r
}

func NewBillResource(db *gorm.DB) *Resource[model.Bill, *model.Bill] {
	r := NewResource[model.Bill](db, "status", "type", "user_id", "flat_id")
	users := generic.NewScopedRepository[model.User](db)
	flats := generic.NewScopedRepository[model.Flat](db)
	check := func(c *gin.Context, sc generic.Scope, b *model.Bill) error {
		b.User, b.Flat = nil, nil
		if err := inScope(c.Request.Context(), users, sc, b.UserID, "user"); err != nil {
			return err
		}
		if b.FlatID != nil {
			return inScope(c.Request.Context(), flats, sc, *b.FlatID, "flat")
		}
		return nil
	}
	r.BeforeCreate, r.BeforeUpdate = check, check
	return r
}

func NewDocumentResource(db *gorm.DB) *Resource[model.Document, *model.Document] {
	r := NewResource[model.Document](db, "category")
	r.BeforeCreate = func(c *gin.Context, sc generic.Scope, d *model.Document) error {
		d.UploadedBy = sc.UserID
		return nil
	}
	return r
}

func NewHelplineResource(db *gorm.DB) *Resource[model.Helpline, *model.Helpline] {
	return NewResource[model.Helpline](db, "category")
}
