package payment

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway charges through the Stripe API. Every call carries an
// explicit timeout; a deadline hit is reported as ErrUnconfirmed because the
// request may have reached Stripe before the cutoff.
type StripeGateway struct {
	api     *client.API
	timeout time.Duration
	logger  *logrus.Logger
}

func NewStripeGateway(secretKey string, timeout time.Duration, logger *logrus.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StripeGateway{api: api, timeout: timeout, logger: logger}
}

func (g *StripeGateway) Charge(ctx context.Context, amount int64, currency, sourceToken string) (*Charge, error) {
	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = cctx
	if err := params.SetSource(sourceToken); err != nil {
		return nil, ErrDeclined
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
			if g.logger != nil {
				g.logger.WithError(err).WithField("amount", amount).
					Error("charge timed out, outcome unknown, reconcile against gateway")
			}
			return nil, ErrUnconfirmed
		}
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.Type == stripe.ErrorTypeCard {
			return nil, ErrDeclined
		}
		return nil, err
	}
	return &Charge{ID: ch.ID, Amount: ch.Amount, Status: string(ch.Status)}, nil
}

var _ Gateway = (*StripeGateway)(nil)
