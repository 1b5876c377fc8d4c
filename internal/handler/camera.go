package handler

import (
	"net/http"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CameraHandler manages society cameras and hands stream URLs to guards
type CameraHandler struct {
	repo *generic.ScopedRepository[model.Camera, *model.Camera]
}

func NewCameraHandler(db *gorm.DB) *CameraHandler {
	return &CameraHandler{repo: generic.NewScopedRepository[model.Camera](db)}
}

func applyCameraRequest(cam *model.Camera, req *model.CameraRequest, partial bool) {
	set := func(dst *string, v string) {
		if !partial || v != "" {
			*dst = v
		}
	}
	set(&cam.Name, req.Name)
	set(&cam.Location, req.Location)
	set(&cam.Host, req.Host)
	set(&cam.Username, req.Username)
	set(&cam.Password, req.Password)
	set(&cam.StreamPath, req.StreamPath)
	if !partial || req.Port != 0 {
		cam.Port = req.Port
	}
	if req.IsActive != nil {
		cam.IsActive = *req.IsActive
	} else if !partial {
		cam.IsActive = true
	}
}

// List handles GET /admin/cameras
func (h *CameraHandler) List(c *gin.Context) {
	cams, err := h.repo.List(c.Request.Context(), middleware.CurrentScope(c), generic.Paginate(pagination(c)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cams)
}

// Get handles GET /admin/cameras/:id
func (h *CameraHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cam, err := h.repo.Get(c.Request.Context(), middleware.CurrentScope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cam)
}

// Create handles POST /admin/cameras
func (h *CameraHandler) Create(c *gin.Context) {
	var req model.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	cam := &model.Camera{}
	applyCameraRequest(cam, &req, false)
	if err := h.repo.Create(c.Request.Context(), middleware.CurrentScope(c), cam); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cam)
}

// Update handles PUT /admin/cameras/:id. An empty password keeps the stored one.
func (h *CameraHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	cam, err := h.repo.Update(c.Request.Context(), middleware.CurrentScope(c), id, func(cam *model.Camera) error {
		applyCameraRequest(cam, &req, true)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cam)
}

// Delete handles DELETE /admin/cameras/:id
func (h *CameraHandler) Delete(c *gin.Context) {
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

// Stream handles GET /admin/cameras/:id/stream
func (h *CameraHandler) Stream(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cam, err := h.repo.Get(c.Request.Context(), middleware.CurrentScope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CameraStream{Camera: cam, StreamURL: cam.StreamURL()})
}

// ListStreams handles GET /guard/cameras: active cameras with their URLs
func (h *CameraHandler) ListStreams(c *gin.Context) {
	cams, err := h.repo.List(c.Request.Context(), middleware.CurrentScope(c), generic.Eq("is_active", true))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]model.CameraStream, 0, len(cams))
	for i := range cams {
		out = append(out, model.CameraStream{Camera: &cams[i], StreamURL: cams[i].StreamURL()})
	}
	c.JSON(http.StatusOK, out)
}
