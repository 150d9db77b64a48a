package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes. root is
// the engine's top-level group (/signup, /login, /profile live there), api
// is the /api group everything else hangs off.
type Module interface {
	Register(root, api *gin.RouterGroup)
}
