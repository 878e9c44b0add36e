package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/application"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/response"
	"github.com/threadline/storefront/pkg/validation"
)

// UserHandler exposes account reads and permission administration.
type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type updatePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// Me GET /api/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Users.Me(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "me")
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	us, err := h.Users.ListUsers(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(us), "users")
}

// UpdatePermissions PUT /api/users/:id/permissions
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	var req updatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.UpdatePermissions(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), req.Permissions)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "permissions updated")
}
