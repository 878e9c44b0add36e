package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threadline/storefront/pkg/helpers"
	"github.com/threadline/storefront/pkg/response"
)

// CtxUserIDKey is where the authenticated user id is stored in the Gin context.
const CtxUserIDKey = "userID"

// Auth validates the session cookie and injects the user id into the
// context. Routes behind it never see an empty userID.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := helpers.Session(c)
		if !ok {
			resp := response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid session", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
