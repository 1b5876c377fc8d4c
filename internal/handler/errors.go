package handler

import (
	"errors"
	"net/http"
	"strconv"

	"societyhub/internal/config"
	"societyhub/internal/database"
	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"
	"societyhub/pkg/generic"
	"societyhub/pkg/storage"
	"societyhub/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// respondError maps domain errors to HTTP statuses. Unknown errors are
// logged and reported as 500 without internal detail.
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, model.ErrInvalid):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, generic.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, generic.ErrOutOfScope), errors.Is(err, service.ErrSocietyNotLinked):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInactiveUser),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrOTPInvalid),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPUsed):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrRateLimited):
		status, msg = http.StatusTooManyRequests, err.Error()
	case errors.Is(err, service.ErrNotAdmin):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		status, msg = http.StatusConflict, err.Error()
	case database.IsUniqueViolation(err):
		status, msg = http.StatusConflict, "A record with the same unique value already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		status, msg = http.StatusBadRequest, "Referenced record does not exist"
	case errors.Is(err, storage.ErrInvalidDataURL), errors.Is(err, storage.ErrEmpty):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, storage.ErrTooLarge):
		status, msg = http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, storage.ErrUnsupportedType):
		status, msg = http.StatusUnsupportedMediaType, err.Error()
	default:
		log.Error().Err(err).
			Str("request_id", middleware.RequestID(c)).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}
	c.JSON(status, model.NewErrorResponse(msg, ""))
}

func badRequest(c *gin.Context, msg string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.JSON(http.StatusBadRequest, model.NewErrorResponse(msg, details))
}

// paramID parses a numeric path parameter, writing 400 on failure.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := util.ParseID(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// pagination reads page and page_size query parameters.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(config.DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = config.DefaultPageSize
	}
	if size > config.MaxPageSize {
		size = config.MaxPageSize
	}
	return page, size
}
