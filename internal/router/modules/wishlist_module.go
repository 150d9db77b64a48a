package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshbasket/api/internal/container"
	repo "github.com/freshbasket/api/internal/domain/repository"
	handlers "github.com/freshbasket/api/internal/interface/http"
	"github.com/freshbasket/api/internal/interface/middleware"
)

// WishlistModule wires the authenticated per-owner wishlist routes.
type WishlistModule struct {
	Handler *handlers.WishlistHandler
	Users   repo.UserRepository
}

func NewWishlistModule(h *handlers.WishlistHandler, users repo.UserRepository) *WishlistModule {
	return &WishlistModule{Handler: h, Users: users}
}

func (m *WishlistModule) Register(root, api *gin.RouterGroup) {
	auth := api.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/wishlist", m.Handler.Get)
		auth.POST("/wishlist", m.Handler.Toggle)
	}
}
