package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/threadline/storefront/internal/interface/http"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/helpers"
)

// ItemModule wires the catalog routes. Browsing and search are public;
// anything that mutates the catalog requires a session.
// Public: GET /api/items, GET /api/items/search, GET /api/items/:id
// Protected: POST /api/items, PUT/DELETE /api/items/:id, POST /api/items/:id/image

type ItemModule struct {
	Handler *handlers.ItemHandler
	JWT     *helpers.JWTManager
}

func NewItemModule(h *handlers.ItemHandler, jwt *helpers.JWTManager) *ItemModule {
	return &ItemModule{Handler: h, JWT: jwt}
}

func (m *ItemModule) Register(rg *gin.RouterGroup) {
	// "search" must be registered before ":id" would otherwise shadow it;
	// gin handles the static segment first, but keep them adjacent for clarity.
	rg.GET("/items", m.Handler.List)
	rg.GET("/items/search", m.Handler.Search)
	rg.GET("/items/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/items", m.Handler.Create)
		auth.PUT("/items/:id", m.Handler.Update)
		auth.DELETE("/items/:id", m.Handler.Delete)
		auth.POST("/items/:id/image", m.Handler.UploadImage)
	}
}
