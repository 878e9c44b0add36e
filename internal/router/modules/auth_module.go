package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/threadline/storefront/internal/container"
	handlers "github.com/threadline/storefront/internal/interface/http"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/helpers"
)

// AuthModule wires signup, signin, signout and password reset routes.
// Public: POST /api/signup, POST /api/signin, POST /api/reset/request, POST /api/reset/confirm
// Protected: POST /api/signout

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits; reset requests are the
	// tightest since each one triggers an outbound email.
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	signinLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	resetRequestLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/signin", signinLimiter, m.Handler.Signin)
	rg.POST("/reset/request", resetRequestLimiter, m.Handler.RequestReset)
	rg.POST("/reset/confirm", resetConfirmLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/signout", m.Handler.Signout)
	}
}
