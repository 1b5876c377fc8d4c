package handler

import (
	"net/http"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NoticeHandler publishes notices and serves them to their recipients
type NoticeHandler struct {
	notices *service.NoticeService
	repo    *generic.ScopedRepository[model.Notice, *model.Notice]
}

func NewNoticeHandler(db *gorm.DB, notices *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices, repo: generic.NewScopedRepository[model.Notice](db)}
}

// Create handles POST /admin/notices
func (h *NoticeHandler) Create(c *gin.Context) {
	var req model.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	notice, err := h.notices.Create(c.Request.Context(), middleware.CurrentScope(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notice)
}

// List handles GET /admin/notices
func (h *NoticeHandler) List(c *gin.Context) {
	notices, err := h.repo.List(c.Request.Context(), middleware.CurrentScope(c),
		generic.Preload("Recipients"),
		func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") },
		generic.Paginate(pagination(c)),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}

// Delete handles DELETE /admin/notices/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), middleware.CurrentScope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMine handles GET /owner/notices and /tenant/notices
func (h *NoticeHandler) ListMine(c *gin.Context) {
	notices, err := h.notices.ListForUser(c.Request.Context(), middleware.CurrentScope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}

// MarkRead handles POST /owner/notices/:id/read and /tenant/notices/:id/read
func (h *NoticeHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.notices.MarkRead(c.Request.Context(), middleware.CurrentScope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Notice marked as read"))
}
