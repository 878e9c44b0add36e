package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/application"
	"github.com/threadline/storefront/pkg/response"
)

// writeError maps domain failures to HTTP statuses and returns them
// verbatim. Anything outside the taxonomy is an infrastructure fault: it is
// logged with the request id and surfaced as a generic 500 so internals
// never leak to clients.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status, ok := domainStatus(err)
	if !ok {
		logger.WithError(err).
			WithField("request_id", c.GetString("request_id")).
			WithField("path", c.FullPath()).
			Error("request failed")
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Fail(c, status, err.Error(), nil)
}

func domainStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, application.ErrValidation),
		errors.Is(err, application.ErrPasswordMismatch),
		errors.Is(err, application.ErrInvalidOrExpiredToken),
		errors.Is(err, application.ErrEmptyCart):
		return http.StatusBadRequest, true
	case errors.Is(err, application.ErrAuthRequired),
		errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, application.ErrPaymentDeclined):
		return http.StatusPaymentRequired, true
	case errors.Is(err, application.ErrForbidden),
		errors.Is(err, application.ErrNotOwner):
		return http.StatusForbidden, true
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, application.ErrDuplicateEmail):
		return http.StatusConflict, true
	default:
		return 0, false
	}
}
