package handler

import (
	"net/http"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admins *service.AdminService
}

func NewAdminHandler(admins *service.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// AdminSociety is one linked society as seen by the admin
type AdminSociety struct {
	model.AdminSociety
	Active bool `json:"active"`
}

// Societies handles GET /admin/societies. Active marks the society the
// current request is scoped to.
func (h *AdminHandler) Societies(c *gin.Context) {
	sc := middleware.CurrentScope(c)
	links, err := h.admins.Societies(c.Request.Context(), sc.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]AdminSociety, 0, len(links))
	for _, link := range links {
		out = append(out, AdminSociety{AdminSociety: link, Active: link.SocietyID == sc.SocietyID})
	}
	c.JSON(http.StatusOK, out)
}
