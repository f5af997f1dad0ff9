package router

import "github.com/gin-gonic/gin"

// Module is a self-contained slice of the API surface. Each module registers
// its own routes and middleware onto the shared /api group.
type Module interface {
	Register(api *gin.RouterGroup)
}
