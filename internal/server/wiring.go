package server

import (
	"fmt"

	"societyhub/internal/config"
	"societyhub/internal/events"
	"societyhub/internal/handler"
	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/internal/service"
	"societyhub/pkg/storage"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Deps are the optional backends a server can run with. Nil fields fall back
// to in-process or Postgres implementations.
type Deps struct {
	Redis     service.RedisClient
	Mongo     *mongo.Database
	OTPSender service.OTPSender
}

type Repositories struct {
	User         repository.IUserRepository
	AdminSociety repository.IAdminSocietyRepository
	OTP          repository.IOTPRepository
	Notice       repository.INoticeRepository
	AuditLog     repository.IAuditLogRepository
}

type Services struct {
	Auth      *service.AuthService
	OTP       *service.OTPService
	Audit     *service.AuditService
	Admin     *service.AdminService
	Society   *service.SocietyService
	User      *service.UserService
	Notice    *service.NoticeService
	Visitor   *service.VisitorService
	Agreement *service.AgreementService
	Hub       *events.Hub
	Store     *storage.DiskStore
}

type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Superadmin *handler.SuperadminHandler
	Admin      *handler.AdminHandler
	User       *handler.UserHandler
	Building   *handler.Resource[model.Building, *model.Building]
	Flat       *handler.Resource[model.Flat, *model.Flat]
	Bill       *handler.Resource[model.Bill, *model.Bill]
	Document   *handler.Resource[model.Document, *model.Document]
	Helpline   *handler.Resource[model.Helpline, *model.Helpline]
	Complaint  *handler.ComplaintHandler
	Notice     *handler.NoticeHandler
	Camera     *handler.CameraHandler
	Visitor    *handler.VisitorHandler
	Agreement  *handler.AgreementHandler
	Upload     *handler.UploadHandler
}

func InitRepositories(db *gorm.DB, deps Deps) *Repositories {
	audit := repository.NewGormAuditLogRepository(db)
	if deps.Mongo != nil {
		audit = repository.NewMongoAuditLogRepository(deps.Mongo)
	}
	return &Repositories{
		User:         repository.NewUserRepository(db),
		AdminSociety: repository.NewAdminSocietyRepository(db),
		OTP:          repository.NewOTPRepository(db),
		Notice:       repository.NewNoticeRepository(db),
		AuditLog:     audit,
	}
}

func InitServices(cfg *config.Config, db *gorm.DB, repos *Repositories, deps Deps) (*Services, error) {
	var cache service.UserCache
	if deps.Redis != nil {
		cache = service.NewRedisUserCache(deps.Redis, cfg.Redis.UserTTL)
	}
	store, err := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to init upload store: %w", err)
	}

	hub := events.NewHub(0)
	auth := service.NewAuthService(repos.User, cache, cfg)
	audit := service.NewAuditService(repos.AuditLog)
	return &Services{
		Auth:      auth,
		OTP:       service.NewOTPService(repos.OTP, repos.User, auth, deps.OTPSender, cfg),
		Audit:     audit,
		Admin:     service.NewAdminService(db, repos.User, repos.AdminSociety, auth, audit),
		Society:   service.NewSocietyService(db, repos.User, repos.AdminSociety, auth, audit),
		User:      service.NewUserService(db, auth),
		Notice:    service.NewNoticeService(repos.Notice, repos.User),
		Visitor:   service.NewVisitorService(db, hub),
		Agreement: service.NewAgreementService(db, auth),
		Hub:       hub,
		Store:     store,
	}, nil
}

func InitHandlers(db *gorm.DB, s *Services) *Handlers {
	return &Handlers{
		Health:     handler.NewHealthHandler(db),
		Auth:       handler.NewAuthHandler(s.Auth, s.OTP),
		Superadmin: handler.NewSuperadminHandler(db, s.Society, s.Admin, s.Audit),
		Admin:      handler.NewAdminHandler(s.Admin),
		User:       handler.NewUserHandler(s.User),
		Building:   handler.NewBuildingResource(db),
		Flat:       handler.NewFlatResource(db),
		Bill:       handler.NewBillResource(db),
		Document:   handler.NewDocumentResource(db),
		Helpline:   handler.NewHelplineResource(db),
		Complaint:  handler.NewComplaintHandler(db),
		Notice:     handler.NewNoticeHandler(db, s.Notice),
		Camera:     handler.NewCameraHandler(db),
		Visitor:    handler.NewVisitorHandler(s.Visitor, s.Hub),
		Agreement:  handler.NewAgreementHandler(s.Agreement),
		Upload:     handler.NewUploadHandler(s.Store),
	}
}
