package router

import (
	"github.com/freshbasket/api/internal/application"
	"github.com/freshbasket/api/internal/container"
	pginfra "github.com/freshbasket/api/internal/infrastructure/postgres"
	handlers "github.com/freshbasket/api/internal/interface/http"
	"github.com/freshbasket/api/internal/router/modules"
)

// InitModules builds all application modules from the container singletons
// and registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	carts := pginfra.NewCartRepository(pool)
	wishlists := pginfra.NewWishlistRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), container.GetRabbitPub(), logger, cfg.AdminEmail)
	catalogSvc := application.NewCatalogService(products, container.GetES(), cfg.ESProductsIndex, container.GetGCS(), cfg.GCSBucket, logger)
	cartSvc := application.NewCartService(carts, products, logger)
	wishlistSvc := application.NewWishlistService(wishlists, products, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), users))
	r.Add(modules.NewCatalogModule(handlers.NewProductHandler(catalogSvc, logger), users))
	r.Add(modules.NewCartModule(handlers.NewCartHandler(cartSvc, logger), users))
	r.Add(modules.NewWishlistModule(handlers.NewWishlistHandler(wishlistSvc, logger), users))
}
