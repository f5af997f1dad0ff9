package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// CategoryModule mounts the authenticated category routes.
type CategoryModule struct {
	Handler *handler.CategoryHandler
	Auth    gin.HandlerFunc
}

func NewCategoryModule(h *handler.CategoryHandler, auth gin.HandlerFunc) *CategoryModule {
	return &CategoryModule{Handler: h, Auth: auth}
}

func (m *CategoryModule) Register(api *gin.RouterGroup) {
	g := api.Group("/categories", m.Auth)
	g.GET("", m.Handler.List)
	g.POST("", m.Handler.Create)
	g.DELETE("/:id", m.Handler.Delete)
}
