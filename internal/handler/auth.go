package handler

import (
	"net/http"
	"strings"

	"societyhub/internal/middleware"
	"societyhub/internal/model"
	"societyhub/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles password and OTP login
type AuthHandler struct {
	auth *service.AuthService
	otp  *service.OTPService
}

func NewAuthHandler(auth *service.AuthService, otp *service.OTPService) *AuthHandler {
	return &AuthHandler{auth: auth, otp: otp}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Identifier and password are required", err)
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestOTP handles POST /auth/otp/request
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req model.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Phone is required", err)
		return
	}
	resp, err := h.otp.Request(c.Request.Context(), strings.TrimSpace(req.Phone))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req model.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Phone and numeric code are required", err)
		return
	}
	resp, err := h.otp.Verify(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}
	sc := middleware.CurrentScope(c)
	c.JSON(http.StatusOK, gin.H{
		"user":              user,
		"active_society_id": sc.SocietyID,
	})
}
