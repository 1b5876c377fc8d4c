package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"societyhub/internal/model"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve runs chain behind a stub that installs user and sc when user is non-nil.
func serve(user *model.User, sc generic.Scope, chain ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	handlers := []gin.HandlerFunc{func(c *gin.Context) {
		if user != nil {
			SetAuth(c, user, sc)
		}
	}}
	handlers = append(handlers, chain...)
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/", handlers...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"unauthenticated", nil, http.StatusUnauthorized},
		{"wrong role", &model.User{Role: model.RoleTenant}, http.StatusForbidden},
		{"allowed role", &model.User{Role: model.RoleOwner}, http.StatusOK},
		{"second allowed role", &model.User{Role: model.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.user, generic.Scope{}, RequireRoles(model.RoleOwner, model.RoleAdmin))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireSociety(t *testing.T) {
	user := &model.User{Role: model.RoleAdmin}

	assert.Equal(t, http.StatusForbidden, serve(user, generic.Scope{Role: model.RoleAdmin}, RequireSociety()).Code)
	assert.Equal(t, http.StatusOK, serve(user, generic.Scope{Role: model.RoleAdmin, SocietyID: 3}, RequireSociety()).Code)
	assert.Equal(t, http.StatusOK, serve(user, generic.Scope{Unrestricted: true}, RequireSociety()).Code)
}

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = RequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
}

func TestCurrentScopeDefaultsToEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, generic.Scope{}, CurrentScope(c))
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}
