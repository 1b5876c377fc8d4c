package generic

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrOutOfScope = errors.New("no society in scope")
)

// Scope describes which rows a caller may touch.
type Scope struct {
	UserID    uint
	Role      string
	SocietyID uint
	// Unrestricted disables all filtering (superadmin).
	Unrestricted bool
	// Personal restricts Owned entities to rows owned by UserID.
	Personal bool
}

// Query narrows a scoped query further (filters, ordering, preloads).
type Query func(*gorm.DB) *gorm.DB

// Apply adds the society and ownership conditions for entity to db.
func (s Scope) Apply(db *gorm.DB, entity interface{}) (*gorm.DB, error) {
	if s.Unrestricted {
		return db, nil
	}
	if s.SocietyID == 0 {
		return nil, ErrOutOfScope
	}
	db = db.Where(clause.Eq{Column: column("society_id"), Value: s.SocietyID})
	if !s.Personal {
		return db, nil
	}
	owned, ok := entity.(Owned)
	if !ok {
		return db, nil
	}
	col := owned.OwnerColumn(s.Role)
	if col == "" {
		return db.Where("1 = 0"), nil
	}
	return db.Where(clause.Eq{Column: column(col), Value: s.UserID}), nil
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// Paginate applies limit/offset; page is 1-based.
func Paginate(page, size int) Query {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if size < 1 {
			return db
		}
		return db.Limit(size).Offset((page - 1) * size)
	}
}

// Where is a shorthand Query for a single condition.
func Where(query interface{}, args ...interface{}) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Eq filters on a column of the queried table.
func Eq(col string, value interface{}) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: column(col), Value: value})
	}
}

// Preload is a shorthand Query for eager loading a relation.
func Preload(name string) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(name)
	}
}

func applyQueries(db *gorm.DB, queries []Query) *gorm.DB {
	for _, q := range queries {
		if q != nil {
			db = q(db)
		}
	}
	return db
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
