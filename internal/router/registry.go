package router

import "github.com/gin-gonic/gin"

type Registry struct {
	Engine  *gin.Engine
	Root    *gin.RouterGroup
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		Engine: engine,
		Root:   engine.Group(""),
		API:    engine.Group("/api"),
	}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.Root, r.API)
	}
}
