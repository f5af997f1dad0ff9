package router

import "github.com/gin-gonic/gin"

// Registry collects route modules and mounts them under /api.
type Registry struct {
	modules []Module
}

func NewRegistry(modules ...Module) *Registry {
	return &Registry{modules: modules}
}

func (r *Registry) Add(m Module) {
	r.modules = append(r.modules, m)
}

// Mount registers every module under the /api group.
func (r *Registry) Mount(engine *gin.Engine) {
	api := engine.Group("/api")
	for _, m := range r.modules {
		m.Register(api)
	}
}
