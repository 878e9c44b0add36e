package application

import "errors"

// Domain failures surfaced verbatim to callers. Anything outside this
// taxonomy is an infrastructure fault: logged and returned as a generic
// failure at the transport boundary.
var (
	ErrAuthRequired          = errors.New("authentication required")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("insufficient permissions")
	ErrNotOwner              = errors.New("not the owner")
	ErrInvalidOrExpiredToken = errors.New("reset token invalid or expired")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrPaymentDeclined       = errors.New("payment declined")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrValidation            = errors.New("invalid input")
)
