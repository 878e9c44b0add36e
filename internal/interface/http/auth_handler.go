package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/application"
	"github.com/threadline/storefront/pkg/helpers"
	"github.com/threadline/storefront/pkg/response"
	"github.com/threadline/storefront/pkg/validation"
)

// AuthHandler exposes signup/signin/signout and the password-reset flow.
type AuthHandler struct {
	Credentials *application.CredentialService
	Resets      *application.PasswordResetService
	Cookies     *helpers.CookieManager
	Logger      *logrus.Logger
}

func NewAuthHandler(creds *application.CredentialService, resets *application.PasswordResetService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Credentials: creds, Resets: resets, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type requestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	ResetToken      string `json:"reset_token" binding:"required"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Credentials.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expiry)
	response.Success(c, http.StatusCreated, toUserView(u), "signed up")
}

// Signin POST /api/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Credentials.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expiry)
	response.Success(c, http.StatusOK, toUserView(u), "signed in")
}

// Signout POST /api/signout
func (h *AuthHandler) Signout(c *gin.Context) {
	h.Cookies.ClearSession(c)
	response.Success[any](c, http.StatusOK, gin.H{"signed_out": true}, "goodbye")
}

// RequestReset POST /api/reset/request
// Responds identically for known and unknown emails so the endpoint cannot
// be used to enumerate accounts; the not-found case is still logged.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Resets.RequestReset(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, application.ErrNotFound) {
		writeError(c, h.Logger, err)
		return
	}
	if errors.Is(err, application.ErrNotFound) {
		h.Logger.WithField("request_id", c.GetString("request_id")).Info("reset requested for unknown email")
	}
	response.Success[any](c, http.StatusOK, gin.H{"requested": true}, "check your email for a reset link")
}

// ResetPassword POST /api/reset/confirm
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Resets.ResetPassword(c.Request.Context(), req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expiry)
	response.Success(c, http.StatusOK, toUserView(u), "password updated")
}
