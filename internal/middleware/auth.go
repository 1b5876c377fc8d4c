package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"societyhub/internal/model"
	"societyhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Authenticate validates the bearer token, loads the user and resolves the
// data scope for the rest of the chain.
func Authenticate(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Missing or malformed Authorization header", ""))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrInactiveUser):
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid or expired token", ""))
			default:
				log.Error().Err(err).Str("request_id", RequestID(c)).Msg("Authentication failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse("Authentication failed", ""))
			}
			return
		}

		var requested uint
		if raw := strings.TrimSpace(c.GetHeader(SocietyHeader)); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, model.NewErrorResponse("Invalid "+SocietyHeader+" header", ""))
				return
			}
			requested = uint(id)
		}

		scope, err := auth.ResolveScope(user, requested)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse(err.Error(), ""))
			return
		}

		SetAuth(c, user, scope)
		c.Next()
	}
}

// RequireRoles allows the request through only for the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Insufficient role", ""))
			return
		}
		c.Next()
	}
}

// RequireSociety rejects callers that have no active society.
func RequireSociety() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := CurrentScope(c)
		if !sc.Unrestricted && sc.SocietyID == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("No society associated with this account", ""))
			return
		}
		c.Next()
	}
}
