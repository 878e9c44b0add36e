package router

import (
	"github.com/threadline/storefront/internal/application"
	"github.com/threadline/storefront/internal/container"
	"github.com/threadline/storefront/internal/infrastructure/postgres"
	handlers "github.com/threadline/storefront/internal/interface/http"
	"github.com/threadline/storefront/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := postgres.NewUserRepository(pool)
	items := postgres.NewItemRepository(pool)
	carts := postgres.NewCartRepository(pool)
	orders := postgres.NewOrderRepository(pool)

	credentials := application.NewCredentialService(users, jwt, logger)
	resets := application.NewPasswordResetService(users, credentials, container.GetRabbitPub(), cfg.FrontendURL, logger)
	itemSvc := application.NewItemService(items, users, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESItemsIndex, logger)
	userSvc := application.NewUserService(users, logger)
	cartSvc := application.NewCartService(carts, items, logger)
	orderSvc := application.NewOrderService(users, carts, orders, container.GetGateway(), container.GetRabbitPub(), cfg.Currency, logger)

	cookies := container.GetCookies()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(credentials, resets, cookies, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewItemModule(handlers.NewItemHandler(itemSvc, logger), jwt))
	r.Add(modules.NewCartModule(handlers.NewCartHandler(cartSvc, logger), jwt))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), jwt))
}
