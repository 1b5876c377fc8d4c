package generic

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BaseRepository is unscoped CRUD for reference data that belongs to no
// society (societies themselves, subscription plans).
type BaseRepository[T any, PT interface {
	*T
	Entity
}] struct {
	DB *gorm.DB
}

func NewBaseRepository[T any, PT interface {
	*T
	Entity
}](db *gorm.DB) *BaseRepository[T, PT] {
	return &BaseRepository[T, PT]{DB: db}
}

// 1. Create
func (r *BaseRepository[T, PT]) Create(ctx context.Context, entity PT) error {
	entity.SetID(0)
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// 2. GetByID
func (r *BaseRepository[T, PT]) GetByID(ctx context.Context, id uint, queries ...Query) (PT, error) {
	var entity T
	db := applyQueries(r.DB.WithContext(ctx), queries)
	if err := db.First(&entity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// 3. List
func (r *BaseRepository[T, PT]) List(ctx context.Context, queries ...Query) ([]T, error) {
	var out []T
	db := applyQueries(r.DB.WithContext(ctx).Model(new(T)), queries)
	if err := db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// 4. Update (load, mutate, full save)
func (r *BaseRepository[T, PT]) Update(ctx context.Context, id uint, mutate func(PT) error) (PT, error) {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restore := keepCreatedAt(entity)
	if err := mutate(entity); err != nil {
		return nil, err
	}
	entity.SetID(id)
	restore()
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// 5. Delete
func (r *BaseRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
