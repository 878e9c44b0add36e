package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/threadline/storefront/internal/interface/http"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/helpers"
)

// CartModule wires the shopping cart routes. All of them require a session.
// Protected: GET /api/cart, POST /api/cart, DELETE /api/cart/:id

type CartModule struct {
	Handler *handlers.CartHandler
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/cart", m.Handler.List)
		auth.POST("/cart", m.Handler.Add)
		auth.DELETE("/cart/:id", m.Handler.Remove)
	}
}
