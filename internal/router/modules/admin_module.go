package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// AdminModule mounts the administrative routes. AdminGate runs after Auth.
type AdminModule struct {
	Handler   *handler.AdminHandler
	Auth      gin.HandlerFunc
	AdminGate gin.HandlerFunc
}

func NewAdminModule(h *handler.AdminHandler, auth, adminGate gin.HandlerFunc) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth, AdminGate: adminGate}
}

func (m *AdminModule) Register(api *gin.RouterGroup) {
	g := api.Group("/admin", m.Auth, m.AdminGate)
	g.GET("/users", m.Handler.ListUsers)
	g.PUT("/users/:id", m.Handler.UpdateUser)
	g.DELETE("/users/:id", m.Handler.DeleteUser)
	g.GET("/stats", m.Handler.GetStats)
}
