package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshbasket/api/internal/container"
	repo "github.com/freshbasket/api/internal/domain/repository"
	handlers "github.com/freshbasket/api/internal/interface/http"
	"github.com/freshbasket/api/internal/interface/middleware"
)

// CartModule wires the authenticated per-owner cart routes.
type CartModule struct {
	Handler *handlers.CartHandler
	Users   repo.UserRepository
}

func NewCartModule(h *handlers.CartHandler, users repo.UserRepository) *CartModule {
	return &CartModule{Handler: h, Users: users}
}

func (m *CartModule) Register(root, api *gin.RouterGroup) {
	auth := api.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/cart", m.Handler.Get)
		auth.POST("/cart", m.Handler.SetQuantity)
	}
}
