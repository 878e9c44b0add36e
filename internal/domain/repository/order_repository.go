package repository

import (
	"context"

	"github.com/threadline/storefront/internal/domain/entity"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// CreateWithCartClear inserts the order with its frozen items and
	// deletes every cart line belonging to o.UserID in one transaction.
	// ChargeID carries a uniqueness constraint: if an order for the same
	// charge already exists the insert is a no-op and the stored order is
	// returned, so a retried materialization never duplicates an order.
	CreateWithCartClear(ctx context.Context, o *entity.Order) (*entity.Order, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
}
