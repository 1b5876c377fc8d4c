package generic

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScopedRepository is CRUD over society-owned rows. Every operation is
// filtered through a Scope so callers cannot reach another society's data.
type ScopedRepository[T any, PT interface {
	*T
	SocietyScoped
}] struct {
	DB *gorm.DB
}

func NewScopedRepository[T any, PT interface {
	*T
	SocietyScoped
}](db *gorm.DB) *ScopedRepository[T, PT] {
	return &ScopedRepository[T, PT]{DB: db}
}

// WithTx returns a copy bound to tx.
func (r *ScopedRepository[T, PT]) WithTx(tx *gorm.DB) *ScopedRepository[T, PT] {
	return &ScopedRepository[T, PT]{DB: tx}
}

func (r *ScopedRepository[T, PT]) scoped(ctx context.Context, sc Scope) (*gorm.DB, error) {
	return sc.Apply(r.DB.WithContext(ctx).Model(new(T)), PT(new(T)))
}

func (r *ScopedRepository[T, PT]) List(ctx context.Context, sc Scope, queries ...Query) ([]T, error) {
	db, err := r.scoped(ctx, sc)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := applyQueries(db, queries).Order(clause.OrderByColumn{Column: column("id")}).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of rows visible to sc.
func (r *ScopedRepository[T, PT]) Count(ctx context.Context, sc Scope, queries ...Query) (int64, error) {
	db, err := r.scoped(ctx, sc)
	if err != nil {
		return 0, err
	}
	var n int64
	err = applyQueries(db, queries).Count(&n).Error
	return n, err
}

func (r *ScopedRepository[T, PT]) Get(ctx context.Context, sc Scope, id uint, queries ...Query) (PT, error) {
	db, err := r.scoped(ctx, sc)
	if err != nil {
		return nil, err
	}
	var entity T
	if err := applyQueries(db, queries).Where(clause.Eq{Column: column("id"), Value: id}).Take(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// Create stamps the scope's society on entity unless the scope is unrestricted.
func (r *ScopedRepository[T, PT]) Create(ctx context.Context, sc Scope, entity PT) error {
	if !sc.Unrestricted {
		if sc.SocietyID == 0 {
			return ErrOutOfScope
		}
		entity.SetSocietyID(sc.SocietyID)
	}
	entity.SetID(0)
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// Update loads the row through the scope, applies mutate and saves it. The
// id, the creation time and (for restricted scopes) the society cannot be
// changed by mutate.
func (r *ScopedRepository[T, PT]) Update(ctx context.Context, sc Scope, id uint, mutate func(PT) error) (PT, error) {
	entity, err := r.Get(ctx, sc, id)
	if err != nil {
		return nil, err
	}
	societyID := entity.GetSocietyID()
	restore := keepCreatedAt(entity)
	if err := mutate(entity); err != nil {
		return nil, err
	}
	entity.SetID(id)
	restore()
	if !sc.Unrestricted {
		entity.SetSocietyID(societyID)
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *ScopedRepository[T, PT]) Delete(ctx context.Context, sc Scope, id uint) error {
	db, err := r.scoped(ctx, sc)
	if err != nil {
		return err
	}
	res := db.Where(clause.Eq{Column: column("id"), Value: id}).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
