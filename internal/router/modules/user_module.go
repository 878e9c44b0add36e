package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/threadline/storefront/internal/interface/http"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/helpers"
)

// UserModule wires the current-user and account administration routes.
// Protected: GET /api/me, GET /api/users, PUT /api/users/:id/permissions

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/users", m.Handler.List)
		auth.PUT("/users/:id/permissions", m.Handler.UpdatePermissions)
	}
}
