package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/threadline/storefront/internal/container"
	handlers "github.com/threadline/storefront/internal/interface/http"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/helpers"
)

// OrderModule wires checkout and order history routes. All require a session.
// Protected: POST /api/orders, GET /api/orders, GET /api/orders/:id

type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		// Checkout hits the payment gateway; keep a tight per-IP cap on it.
		checkoutLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

		auth.POST("/orders", checkoutLimiter, m.Handler.Create)
		auth.GET("/orders", m.Handler.List)
		auth.GET("/orders/:id", m.Handler.Get)
	}
}
