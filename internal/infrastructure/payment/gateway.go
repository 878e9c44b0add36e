package payment

import (
	"context"
	"errors"
)

var (
	// ErrDeclined is returned when the gateway rejects the charge outright.
	ErrDeclined = errors.New("payment declined")
	// ErrUnconfirmed is returned when the charge outcome is unknown, e.g.
	// the call timed out after the request may have reached the gateway.
	// Callers must reconcile against the gateway's record, never retry
	// blindly: a blind retry risks a duplicate charge.
	ErrUnconfirmed = errors.New("payment outcome unconfirmed")
)

// Charge is the gateway's record of a captured payment.
type Charge struct {
	ID     string
	Amount int64
	Status string
}

// Gateway captures payments. Amounts are in integer minor currency units,
// matching the gateway's convention.
type Gateway interface {
	Charge(ctx context.Context, amount int64, currency, sourceToken string) (*Charge, error)
}
