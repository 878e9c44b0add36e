package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
	"github.com/threadline/storefront/internal/domain/repository"
	"github.com/threadline/storefront/internal/infrastructure/payment"
	"github.com/threadline/storefront/pkg/mailer"
)

// OrderService composes pricing, payment capture, order materialization and
// cart retirement.
type OrderService struct {
	Users    repository.UserRepository
	Carts    repository.CartRepository
	Orders   repository.OrderRepository
	Gateway  payment.Gateway
	Mail     mailer.Queue
	Currency string
	Logger   *logrus.Logger
}

func NewOrderService(users repository.UserRepository, carts repository.CartRepository, orders repository.OrderRepository,
	gateway payment.Gateway, mail mailer.Queue, currency string, logger *logrus.Logger) *OrderService {
	return &OrderService{Users: users, Carts: carts, Orders: orders, Gateway: gateway, Mail: mail, Currency: currency, Logger: logger}
}

// CreateOrder charges the user's cart total and, on success, materializes an
// order with frozen item snapshots and retires the cart in one transaction.
// The charge id doubles as the idempotency key: if the process dies between
// charge and commit, re-running materialization finds the stored order
// instead of charging or inserting twice.
func (s *OrderService) CreateOrder(ctx context.Context, userID, paymentToken string) (*entity.Order, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}

	cart, err := s.Carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	var total int64
	items := make([]entity.OrderItem, 0, len(cart))
	for _, line := range cart {
		total += line.Item.Price * int64(line.Quantity)
		items = append(items, entity.OrderItem{
			Title:       line.Item.Title,
			Description: line.Item.Description,
			Price:       line.Item.Price,
			Image:       line.Item.Image,
			LargeImage:  line.Item.LargeImage,
			Quantity:    line.Quantity,
		})
	}

	charge, err := s.Gateway.Charge(ctx, total, s.Currency, paymentToken)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrDeclined):
			return nil, ErrPaymentDeclined
		case errors.Is(err, payment.ErrUnconfirmed):
			// Ambiguous outcome. Surface as an infrastructure fault; the
			// charge must be reconciled against the gateway's record before
			// any retry.
			s.Logger.WithField("user_id", userID).WithField("total", total).
				Error("charge outcome unconfirmed, manual reconciliation required")
			return nil, err
		default:
			return nil, err
		}
	}

	order := &entity.Order{
		UserID:   userID,
		Total:    total,
		ChargeID: charge.ID,
		Items:    items,
	}
	created, err := s.Orders.CreateWithCartClear(ctx, order)
	if err != nil {
		// The charge succeeded but the order did not persist; the charge id
		// is the handle for the follow-up materialization.
		s.Logger.WithError(err).WithField("charge_id", charge.ID).
			Error("order materialization failed after successful charge")
		return nil, err
	}

	if s.Mail != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "order_confirmation",
			Data: map[string]any{
				"Name":    u.Name,
				"OrderID": created.ID,
				"Total":   created.Total,
			},
		}
		if err := s.Mail.PublishJSON(ctx, job); err != nil {
			// Confirmation mail is best-effort; the order stands.
			s.Logger.WithError(err).WithField("order_id", created.ID).Warn("queueing confirmation email failed")
		}
	}

	s.Logger.WithField("order_id", created.ID).WithField("total", created.Total).Info("order created")
	return created, nil
}

// GetOrder enforces the owner-or-ADMIN read rule.
func (s *OrderService) GetOrder(ctx context.Context, requestingUserID, orderID string) (*entity.Order, error) {
	u, err := s.requester(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := RequireOwnerOr(u, o.UserID, permission.NewSet(permission.Admin)); err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns the requesting user's own orders.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) requester(ctx context.Context, userID string) (*entity.User, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}
	return u, nil
}
