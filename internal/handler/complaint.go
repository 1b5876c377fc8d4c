package handler

import (
	"net/http"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ComplaintHandler serves complaints raised by residents and handled by admins
type ComplaintHandler struct {
	*Resource[model.Complaint, *model.Complaint]
	users *generic.ScopedRepository[model.User, *model.User]
}

func NewComplaintHandler(db *gorm.DB) *ComplaintHandler {
	h := &ComplaintHandler{
		Resource: NewResource[model.Complaint](db, "status", "type"),
		users:    generic.NewScopedRepository[model.User](db),
	}
	h.BeforeCreate = func(c *gin.Context, sc generic.Scope, cp *model.Complaint) error {
		cp.RaisedBy = sc.UserID
		cp.AssignedTo = nil
		cp.Status = model.ComplaintStatusOpen
		return nil
	}
	h.BeforeUpdate = func(c *gin.Context, sc generic.Scope, cp *model.Complaint) error {
		cp.Raiser, cp.Assignee = nil, nil
		if err := inScope(c.Request.Context(), h.users, sc, cp.RaisedBy, "raised_by"); err != nil {
			return err
		}
		return h.checkAssignee(c, sc, cp.AssignedTo)
	}
	return h
}

// Assign handles PATCH /admin/complaints/:id/assign
func (h *ComplaintHandler) Assign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	sc := middleware.CurrentScope(c)
	if err := h.checkAssignee(c, sc, req.AssignedTo); err != nil {
		respondError(c, err)
		return
	}
	complaint, err := h.Repo.Update(c.Request.Context(), sc, id, func(cp *model.Complaint) error {
		cp.AssignedTo = req.AssignedTo
		switch {
		case req.Status != "":
			cp.Status = req.Status
		case req.AssignedTo != nil && cp.Status == model.ComplaintStatusOpen:
			cp.Status = model.ComplaintStatusInProgress
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) checkAssignee(c *gin.Context, sc generic.Scope, assignee *uint) error {
	if assignee == nil {
		return nil
	}
	return inScope(c.Request.Context(), h.users, sc, *assignee, "assignee")
}
