package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handler "github.com/navmark/navmark/internal/interface/http"
	"github.com/navmark/navmark/internal/interface/middleware"
)

// AuthModule mounts the /auth routes. Credential endpoints carry an ip rate
// limit; token and password endpoints behind Auth do not.
type AuthModule struct {
	Handler *handler.AuthHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewAuthModule(h *handler.AuthHandler, auth gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *AuthModule) Register(api *gin.RouterGroup) {
	g := api.Group("/auth")

	credentials := g.Group("")
	if m.Redis != nil {
		credentials.Use(middleware.RateLimit(m.Redis, "auth", 10, time.Minute))
	}
	credentials.POST("/register", m.Handler.Register)
	credentials.POST("/login", m.Handler.Login)

	reset := g.Group("")
	if m.Redis != nil {
		reset.Use(middleware.RateLimit(m.Redis, "pwdreset", 5, 15*time.Minute))
	}
	reset.POST("/forgot-password", m.Handler.ForgotPassword)
	reset.POST("/reset-password", m.Handler.ResetPassword)

	authed := g.Group("", m.Auth)
	authed.POST("/refresh", m.Handler.Refresh)
	authed.POST("/logout", m.Handler.Logout)
	authed.POST("/change-password", m.Handler.ChangePassword)
}
