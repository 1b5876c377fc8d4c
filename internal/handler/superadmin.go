package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"
	"societyhub/pkg/generic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultLogLimit = 100

// SuperadminHandler manages societies, plans and admins. Every mutation is
// written to the superadmin log.
type SuperadminHandler struct {
	societies *generic.BaseRepository[model.Society, *model.Society]
	plans     *generic.BaseRepository[model.SubscriptionPlan, *model.SubscriptionPlan]
	lifecycle *service.SocietyService
	admins    *service.AdminService
	audit     *service.AuditService
}

func NewSuperadminHandler(db *gorm.DB, lifecycle *service.SocietyService, admins *service.AdminService, audit *service.AuditService) *SuperadminHandler {
	return &SuperadminHandler{
		societies: generic.NewBaseRepository[model.Society](db),
		plans:     generic.NewBaseRepository[model.SubscriptionPlan](db),
		lifecycle: lifecycle,
		admins:    admins,
		audit:     audit,
	}
}

func actorID(c *gin.Context) uint {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

// ListSocieties handles GET /superadmin/societies
func (h *SuperadminHandler) ListSocieties(c *gin.Context) {
	societies, err := h.societies.List(c.Request.Context(), generic.Preload("SubscriptionPlan"), generic.Paginate(pagination(c)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, societies)
}

// GetSociety handles GET /superadmin/societies/:id
func (h *SuperadminHandler) GetSociety(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	society, err := h.societies.GetByID(c.Request.Context(), id, generic.Preload("SubscriptionPlan"), generic.Preload("Buildings"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, society)
}

// CreateSociety handles POST /superadmin/societies
func (h *SuperadminHandler) CreateSociety(c *gin.Context) {
	var society model.Society
	if err := c.ShouldBindJSON(&society); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	actor := actorID(c)
	society.CreatedBy = &actor
	if err := h.societies.Create(c.Request.Context(), &society); err != nil {
		respondError(c, err)
		return
	}
	h.audit.Record(c.Request.Context(), actor, "create", "society", society.ID, society.Name)
	c.JSON(http.StatusCreated, society)
}

// UpdateSociety handles PUT /superadmin/societies/:id
func (h *SuperadminHandler) UpdateSociety(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var bindErr error
	society, err := h.societies.Update(c.Request.Context(), id, func(s *model.Society) error {
		createdBy := s.CreatedBy
		bindErr = c.ShouldBindJSON(s)
		s.CreatedBy = createdBy
		return bindErr
	})
	if bindErr != nil {
		badRequest(c, "Invalid request body", bindErr)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit.Record(c.Request.Context(), actorID(c), "update", "society", id, society.Name)
	c.JSON(http.StatusOK, society)
}

// DeleteSociety handles DELETE /superadmin/societies/:id
func (h *SuperadminHandler) DeleteSociety(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.lifecycle.Delete(c.Request.Context(), actorID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPlans handles GET /superadmin/plans
func (h *SuperadminHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan handles POST /superadmin/plans
func (h *SuperadminHandler) CreatePlan(c *gin.Context) {
	var plan model.SubscriptionPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	if err := h.plans.Create(c.Request.Context(), &plan); err != nil {
		respondError(c, err)
		return
	}
	h.audit.Record(c.Request.Context(), actorID(c), "create", "plan", plan.ID, plan.Name)
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan handles PUT /superadmin/plans/:id
func (h *SuperadminHandler) UpdatePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var bindErr error
	plan, err := h.plans.Update(c.Request.Context(), id, func(p *model.SubscriptionPlan) error {
		bindErr = c.ShouldBindJSON(p)
		return bindErr
	})
	if bindErr != nil {
		badRequest(c, "Invalid request body", bindErr)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit.Record(c.Request.Context(), actorID(c), "update", "plan", id, plan.Name)
	c.JSON(http.StatusOK, plan)
}

// DeletePlan handles DELETE /superadmin/plans/:id
func (h *SuperadminHandler) DeletePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.plans.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.audit.Record(c.Request.Context(), actorID(c), "delete", "plan", id, "")
	c.Status(http.StatusNoContent)
}

// ListAdmins handles GET /superadmin/admins
func (h *SuperadminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.admins.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

// CreateAdmin handles POST /superadmin/admins
func (h *SuperadminHandler) CreateAdmin(c *gin.Context) {
	var req model.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	admin, err := h.admins.Create(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// LinkSociety handles POST /superadmin/admins/:id/societies
func (h *SuperadminHandler) LinkSociety(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.LinkSocietyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "society_id is required", err)
		return
	}
	link, err := h.admins.Link(c.Request.Context(), actorID(c), id, req.SocietyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// UnlinkSociety handles DELETE /superadmin/admins/:id/societies/:societyId
func (h *SuperadminHandler) UnlinkSociety(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	societyID, ok := paramID(c, "societyId")
	if !ok {
		return
	}
	if err := h.admins.Unlink(c.Request.Context(), actorID(c), id, societyID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse(fmt.Sprintf("admin %d unlinked from society %d", id, societyID)))
}

// ListLogs handles GET /superadmin/logs?limit=
func (h *SuperadminHandler) ListLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLogLimit)))
	if err != nil || limit < 1 || limit > 1000 {
		limit = defaultLogLimit
	}
	logs, err := h.audit.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
