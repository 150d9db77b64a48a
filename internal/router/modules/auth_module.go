package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshbasket/api/internal/container"
	repo "github.com/freshbasket/api/internal/domain/repository"
	handlers "github.com/freshbasket/api/internal/interface/http"
	"github.com/freshbasket/api/internal/interface/middleware"
)

// AuthModule wires signup/login/profile.
// Public: POST /signup, POST /login. Protected: GET /profile.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(root, api *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	root.POST("/signup", limiter, m.Handler.Signup)
	root.POST("/login", limiter, m.Handler.Login)

	auth := root.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.GET("/profile", m.Handler.Profile)
}
