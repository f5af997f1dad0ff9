package app

import (
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/navmark/navmark/config"
	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/internal/infrastructure/postgres"
	handler "github.com/navmark/navmark/internal/interface/http"
	"github.com/navmark/navmark/internal/interface/middleware"
	"github.com/navmark/navmark/internal/router"
	"github.com/navmark/navmark/internal/router/modules"
	"github.com/navmark/navmark/pkg/helpers"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Deps are the external resources the application runs against. Redis, GCS,
// and the mail publisher are optional; nil disables the feature they back.
type Deps struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     postgres.DB
	Redis  *redis.Client
	GCS    *storage.Client
	Pub    *helpers.RabbitPublisher
}

// Build wires repositories, services, handlers, and routes into a ready
// gin.Engine. All dependencies are explicit; nothing is resolved lazily.
func Build(d Deps) *gin.Engine {
	cfg := d.Config

	validation.Init()
	gin.SetMode(cfg.GinMode)

	users := postgres.NewUserRepository(d.DB)
	bookmarks := postgres.NewBookmarkRepository(d.DB)
	categories := postgres.NewCategoryRepository(d.DB)
	data := postgres.NewDataRepository(d.DB)

	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authSvc := application.NewAuthService(users, jwt, d.Redis, d.Pub, cfg.MailSendEnabled, d.Logger)
	userSvc := application.NewUserService(users, d.GCS, cfg.GCSBucket, d.Logger)
	bookmarkSvc := application.NewBookmarkService(bookmarks, categories, users)
	categorySvc := application.NewCategoryService(categories, users)
	dataSvc := application.NewDataService(users, bookmarks, categories, data)
	adminSvc := application.NewAdminService(users, bookmarks, categories)

	authMW := middleware.Auth(jwt, users)
	allowlist := make(map[string]struct{})
	for _, name := range cfg.AdminAllowlist() {
		allowlist[name] = struct{}{}
	}
	adminMW := middleware.AdminOnly(allowlist)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RealIP())
	if cfg.HTTPLogEnabled {
		engine.Use(gin.Logger())
	}
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	registry := router.NewRegistry(
		modules.NewHealthModule(handler.NewHealthHandler(cfg.AppName, Version)),
		modules.NewAuthModule(handler.NewAuthHandler(authSvc, !cfg.MailSendEnabled), authMW, d.Redis),
		modules.NewUserModule(handler.NewUserHandler(userSvc), authMW),
		modules.NewBookmarkModule(handler.NewBookmarkHandler(bookmarkSvc), authMW),
		modules.NewCategoryModule(handler.NewCategoryHandler(categorySvc), authMW),
		modules.NewDataModule(handler.NewDataHandler(dataSvc), authMW),
		modules.NewAdminModule(handler.NewAdminHandler(adminSvc), authMW, adminMW),
		modules.NewPublicModule(
			handler.NewUserHandler(userSvc),
			handler.NewBookmarkHandler(bookmarkSvc),
			handler.NewCategoryHandler(categorySvc),
		),
	)
	registry.Mount(engine)

	return engine
}
