package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// BookmarkModule mounts the authenticated bookmark CRUD routes.
type BookmarkModule struct {
	Handler *handler.BookmarkHandler
	Auth    gin.HandlerFunc
}

func NewBookmarkModule(h *handler.BookmarkHandler, auth gin.HandlerFunc) *BookmarkModule {
	return &BookmarkModule{Handler: h, Auth: auth}
}

func (m *BookmarkModule) Register(api *gin.RouterGroup) {
	g := api.Group("/bookmarks", m.Auth)
	g.GET("", m.Handler.List)
	g.POST("", m.Handler.Create)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}
