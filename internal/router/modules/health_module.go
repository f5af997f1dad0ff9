package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// HealthModule mounts the liveness probe.
type HealthModule struct {
	Handler *handler.HealthHandler
}

func NewHealthModule(h *handler.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(api *gin.RouterGroup) {
	api.GET("/health", m.Handler.Health)
}
