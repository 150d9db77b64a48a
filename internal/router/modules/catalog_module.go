package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/freshbasket/api/internal/container"
	"github.com/freshbasket/api/internal/domain/entity"
	repo "github.com/freshbasket/api/internal/domain/repository"
	handlers "github.com/freshbasket/api/internal/interface/http"
	"github.com/freshbasket/api/internal/interface/middleware"
)

// CatalogModule wires the product catalog.
// Public reads; vendor/admin writes; admin-only delete.
type CatalogModule struct {
	Handler *handlers.ProductHandler
	Users   repo.UserRepository
}

func NewCatalogModule(h *handlers.ProductHandler, users repo.UserRepository) *CatalogModule {
	return &CatalogModule{Handler: h, Users: users}
}

func (m *CatalogModule) Register(root, api *gin.RouterGroup) {
	api.GET("/products", m.Handler.List)
	api.GET("/products/search", m.Handler.Search)
	api.GET("/products/:id", m.Handler.Get)

	vendor := api.Group("/")
	vendor.Use(middleware.Auth(m.Users, container.GetJWT()))
	vendor.Use(middleware.RequireRoles(entity.RoleVendor, entity.RoleAdmin))
	{
		vendor.POST("/products", m.Handler.Create)
		vendor.PUT("/products/:id", m.Handler.Update)
		vendor.POST("/products/:id/image", m.Handler.UploadImage)
	}

	admin := api.Group("/")
	admin.Use(middleware.Auth(m.Users, container.GetJWT()))
	admin.Use(middleware.RequireRoles(entity.RoleAdmin))
	{
		admin.DELETE("/products/:id", m.Handler.Delete)
	}
}
