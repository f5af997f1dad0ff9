package modules

import (
	"github.com/gin-gonic/gin"

	handler "github.com/navmark/navmark/internal/interface/http"
)

// PublicModule mounts the unauthenticated per-user page routes.
type PublicModule struct {
	Users      *handler.UserHandler
	Bookmarks  *handler.BookmarkHandler
	Categories *handler.CategoryHandler
}

func NewPublicModule(users *handler.UserHandler, bookmarks *handler.BookmarkHandler, categories *handler.CategoryHandler) *PublicModule {
	return &PublicModule{Users: users, Bookmarks: bookmarks, Categories: categories}
}

func (m *PublicModule) Register(api *gin.RouterGroup) {
	g := api.Group("/users/:username")
	g.GET("", m.Users.GetPublicProfile)
	g.GET("/bookmarks", m.Bookmarks.ListPublic)
	g.GET("/categories", m.Categories.ListPublic)
}
