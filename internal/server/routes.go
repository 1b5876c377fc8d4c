package server

import (
	"societyhub/internal/config"
	"societyhub/internal/middleware"
	"societyhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRouter(cfg *config.Config, h *Handlers, s *Services) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestLogger(), middleware.Metrics(), gin.Recovery())

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/otp/request", h.Auth.RequestOTP)
		auth.POST("/otp/verify", h.Auth.VerifyOTP)
	}

	protected := api.Group("")
	protected.Use(middleware.Authenticate(s.Auth))
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/uploads", h.Upload.Upload)

	superadmin := protected.Group("/superadmin", middleware.RequireRoles(model.RoleSuperadmin))
	{
		superadmin.GET("/societies", h.Superadmin.ListSocieties)
		superadmin.POST("/societies", h.Superadmin.CreateSociety)
		superadmin.GET("/societies/:id", h.Superadmin.GetSociety)
		superadmin.PUT("/societies/:id", h.Superadmin.UpdateSociety)
		superadmin.DELETE("/societies/:id", h.Superadmin.DeleteSociety)

		superadmin.GET("/plans", h.Superadmin.ListPlans)
		superadmin.POST("/plans", h.Superadmin.CreatePlan)
		superadmin.PUT("/plans/:id", h.Superadmin.UpdatePlan)
		superadmin.DELETE("/plans/:id", h.Superadmin.DeletePlan)

		superadmin.GET("/admins", h.Superadmin.ListAdmins)
		superadmin.POST("/admins", h.Superadmin.CreateAdmin)
		superadmin.POST("/admins/:id/societies", h.Superadmin.LinkSociety)
		superadmin.DELETE("/admins/:id/societies/:societyId", h.Superadmin.UnlinkSociety)

		superadmin.GET("/logs", h.Superadmin.ListLogs)
	}

	admin := protected.Group("/admin", middleware.RequireRoles(model.RoleAdmin), middleware.RequireSociety())
	{
		admin.GET("/societies", h.Admin.Societies)
		crud(admin.Group("/buildings"), h.Building.List, h.Building.Get, h.Building.Create, h.Building.Update, h.Building.Delete)
		crud(admin.Group("/flats"), h.Flat.List, h.Flat.Get, h.Flat.Create, h.Flat.Update, h.Flat.Delete)
		crud(admin.Group("/users"), h.User.List, h.User.Get, h.User.Create, h.User.Update, h.User.Delete)
		crud(admin.Group("/bills"), h.Bill.List, h.Bill.Get, h.Bill.Create, h.Bill.Update, h.Bill.Delete)
		crud(admin.Group("/documents"), h.Document.List, h.Document.Get, h.Document.Create, h.Document.Update, h.Document.Delete)
		crud(admin.Group("/helplines"), h.Helpline.List, h.Helpline.Get, h.Helpline.Create, h.Helpline.Update, h.Helpline.Delete)

		admin.GET("/complaints", h.Complaint.List)
		admin.GET("/complaints/:id", h.Complaint.Get)
		admin.PUT("/complaints/:id", h.Complaint.Update)
		admin.PATCH("/complaints/:id/assign", h.Complaint.Assign)
		admin.DELETE("/complaints/:id", h.Complaint.Delete)

		admin.GET("/notices", h.Notice.List)
		admin.POST("/notices", h.Notice.Create)
		admin.DELETE("/notices/:id", h.Notice.Delete)

		crud(admin.Group("/cameras"), h.Camera.List, h.Camera.Get, h.Camera.Create, h.Camera.Update, h.Camera.Delete)
		admin.GET("/cameras/:id/stream", h.Camera.Stream)

		admin.GET("/visitors", h.Visitor.List)
		admin.GET("/visitors/stream", h.Visitor.Stream)

		admin.GET("/agreements", h.Agreement.List)
		admin.DELETE("/agreements/:id", h.Agreement.Delete)
	}

	owner := protected.Group("/owner", middleware.RequireRoles(model.RoleOwner), middleware.RequireSociety())
	{
		owner.GET("/flats", h.Flat.List)
		owner.GET("/agreements", h.Agreement.List)
		owner.POST("/agreements", h.Agreement.Create)
		owner.GET("/bills", h.Bill.List)
		owner.GET("/complaints", h.Complaint.List)
		owner.POST("/complaints", h.Complaint.Create)
		owner.GET("/notices", h.Notice.ListMine)
		owner.POST("/notices/:id/read", h.Notice.MarkRead)
		owner.GET("/documents", h.Document.List)
		owner.POST("/documents", h.Document.Create)
		owner.DELETE("/documents/:id", h.Document.Delete)
		owner.GET("/helplines", h.Helpline.List)
		owner.GET("/visitors", h.Visitor.List)
	}

	tenant := protected.Group("/tenant", middleware.RequireRoles(model.RoleTenant, model.RoleResident), middleware.RequireSociety())
	{
		tenant.GET("/agreements", h.Agreement.List)
		tenant.GET("/bills", h.Bill.List)
		tenant.GET("/complaints", h.Complaint.List)
		tenant.POST("/complaints", h.Complaint.Create)
		tenant.GET("/notices", h.Notice.ListMine)
		tenant.POST("/notices/:id/read", h.Notice.MarkRead)
		tenant.GET("/helplines", h.Helpline.List)
	}

	guard := protected.Group("/guard", middleware.RequireRoles(model.RoleSecurityGuard), middleware.RequireSociety())
	{
		guard.GET("/visitors", h.Visitor.List)
		guard.POST("/visitors/check-in", h.Visitor.CheckIn)
		guard.POST("/visitors/:id/check-out", h.Visitor.CheckOut)
		guard.GET("/visitors/stream", h.Visitor.Stream)
		guard.GET("/cameras", h.Camera.ListStreams)
	}

	return r
}

func crud(g *gin.RouterGroup, list, get, create, update, del gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", create)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.DELETE("/:id", del)
}
