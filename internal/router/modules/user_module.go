package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// UserModule mounts the authenticated profile routes under /user.
type UserModule struct {
	Handler *handler.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handler.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(api *gin.RouterGroup) {
	g := api.Group("/user", m.Auth)
	g.GET("/profile", m.Handler.GetProfile)
	g.PUT("/profile", m.Handler.UpdateProfile)
	g.DELETE("/profile", m.Handler.DeleteAccount)
	g.POST("/background", m.Handler.UploadBackground)
}
