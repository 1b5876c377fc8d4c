package handler

import (
	"net/http"
	"strconv"

	"societyhub/internal/middleware"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Hook runs against the entity after binding and before it is written.
type Hook[PT any] func(c *gin.Context, sc generic.Scope, entity PT) error

// Resource serves scoped CRUD for one society-owned model. The scope comes
// from the auth middleware, so the same Resource serves admins and personal
// roles with different visibility.
type Resource[T any, PT interface {
	*T
	generic.SocietyScoped
}] struct {
	Repo *generic.ScopedRepository[T, PT]
	// Filters are query parameters accepted as equality filters on List.
	Filters []string
	// Preloads are relations loaded on List and Get.
	Preloads []string

	BeforeCreate Hook[PT]
	BeforeUpdate Hook[PT]
}

func NewResource[T any, PT interface {
	*T
	generic.SocietyScoped
}](db *gorm.DB, filters ...string) *Resource[T, PT] {
	return &Resource[T, PT]{Repo: generic.NewScopedRepository[T, PT](db), Filters: filters}
}

func (r *Resource[T, PT]) preloads() []generic.Query {
	out := make([]generic.Query, 0, len(r.Preloads))
	for _, p := range r.Preloads {
		out = append(out, generic.Preload(p))
	}
	return out
}

// TotalCountHeader carries the number of matching rows before pagination.
const TotalCountHeader = "X-Total-Count"

// List handles GET /<resource>
func (r *Resource[T, PT]) List(c *gin.Context) {
	var filters []generic.Query
	for _, f := range r.Filters {
		if v := c.Query(f); v != "" {
			filters = append(filters, generic.Eq(f, v))
		}
	}
	sc := middleware.CurrentScope(c)

	total, err := r.Repo.Count(c.Request.Context(), sc, filters...)
	if err != nil {
		respondError(c, err)
		return
	}
	queries := append(r.preloads(), filters...)
	queries = append(queries, generic.Paginate(pagination(c)))
	items, err := r.Repo.List(c.Request.Context(), sc, queries...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}

// Get handles GET /<resource>/:id
func (r *Resource[T, PT]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := r.Repo.Get(c.Request.Context(), middleware.CurrentScope(c), id, r.preloads()...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /<resource>
func (r *Resource[T, PT]) Create(c *gin.Context) {
	entity := PT(new(T))
	if err := c.ShouldBindJSON(entity); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	sc := middleware.CurrentScope(c)
	if r.BeforeCreate != nil {
		if err := r.BeforeCreate(c, sc, entity); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := r.Repo.Create(c.Request.Context(), sc, entity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

// Update handles PUT /<resource>/:id. Fields absent from the body keep
// their stored values.
func (r *Resource[T, PT]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sc := middleware.CurrentScope(c)
	var bindErr error
	item, err := r.Repo.Update(c.Request.Context(), sc, id, func(entity PT) error {
		if err := c.ShouldBindJSON(entity); err != nil {
			bindErr = err
			return err
		}
		if r.BeforeUpdate != nil {
			return r.BeforeUpdate(c, sc, entity)
		}
		return nil
	})
	if bindErr != nil {
		badRequest(c, "Invalid request body", bindErr)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /<resource>/:id
func (r *Resource[T, PT]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := r.Repo.Delete(c.Request.Context(), middleware.CurrentScope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
