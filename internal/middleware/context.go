package middleware

import (
	"societyhub/internal/model"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
)

const (
	userKey      = "auth.user"
	scopeKey     = "auth.scope"
	requestIDKey = "request.id"

	// SocietyHeader lets a multi-society admin pick the active society.
	SocietyHeader   = "X-Society-ID"
	RequestIDHeader = "X-Request-ID"
)

// CurrentUser returns the authenticated user stored by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// CurrentScope returns the data scope of the authenticated user. Without
// authentication the zero Scope is returned, which matches nothing.
func CurrentScope(c *gin.Context) generic.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(generic.Scope); ok {
			return sc
		}
	}
	return generic.Scope{}
}

// RequestID returns the id assigned by RequestLogger.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// SetAuth stores a user and scope; tests use it to bypass token parsing.
func SetAuth(c *gin.Context, user *model.User, sc generic.Scope) {
	c.Set(userKey, user)
	c.Set(scopeKey, sc)
}
