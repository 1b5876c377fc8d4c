package handler

import (
	"net/http"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AgreementHandler struct {
	agreements *service.AgreementService
}

func NewAgreementHandler(agreements *service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreements: agreements}
}

// List handles GET on the admin, owner and tenant agreement routes; the scope
// decides which rows come back.
func (h *AgreementHandler) List(c *gin.Context) {
	list, err := h.agreements.List(c.Request.Context(), middleware.CurrentScope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /owner/agreements
func (h *AgreementHandler) Create(c *gin.Context) {
	var req model.AgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	agreement, err := h.agreements.Create(c.Request.Context(), middleware.CurrentScope(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agreement)
}

// Delete handles DELETE /admin/agreements/:id
func (h *AgreementHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.agreements.Delete(c.Request.Context(), middleware.CurrentScope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
