package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// DataModule mounts the authenticated export/import routes.
type DataModule struct {
	Handler *handler.DataHandler
	Auth    gin.HandlerFunc
}

func NewDataModule(h *handler.DataHandler, auth gin.HandlerFunc) *DataModule {
	return &DataModule{Handler: h, Auth: auth}
}

func (m *DataModule) Register(api *gin.RouterGroup) {
	g := api.Group("/data", m.Auth)
	g.GET("/export", m.Handler.Export)
	g.POST("/import", m.Handler.Import)
}
