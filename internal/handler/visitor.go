package handler

import (
	"net/http"

	"societyhub/internal/events"
	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// VisitorHandler serves the gate log and its live feed
type VisitorHandler struct {
	visitors *service.VisitorService
	hub      *events.Hub
	upgrader websocket.Upgrader
}

func NewVisitorHandler(visitors *service.VisitorService, hub *events.Hub) *VisitorHandler {
	return &VisitorHandler{
		visitors: visitors,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// List handles GET /guard/visitors, /admin/visitors and /owner/visitors
func (h *VisitorHandler) List(c *gin.Context) {
	page, size := pagination(c)
	visitors, err := h.visitors.List(c.Request.Context(), middleware.CurrentScope(c), c.Query("status"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, visitors)
}

// CheckIn handles POST /guard/visitors/check-in
func (h *VisitorHandler) CheckIn(c *gin.Context) {
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	v, err := h.visitors.CheckIn(c.Request.Context(), middleware.CurrentScope(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// CheckOut handles POST /guard/visitors/:id/check-out
func (h *VisitorHandler) CheckOut(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	v, err := h.visitors.CheckOut(c.Request.Context(), middleware.CurrentScope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Stream handles GET /admin/visitors/stream and /guard/visitors/stream, upgrading to a websocket that
// receives check-in and check-out events for the caller's society.
func (h *VisitorHandler) Stream(c *gin.Context) {
	sc := middleware.CurrentScope(c)
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Visitor stream upgrade failed")
		return
	}
	h.hub.Serve(c.Request.Context(), conn, sc.SocietyID)
}
