package repository

import (
	"context"

	"github.com/threadline/storefront/internal/domain/entity"
)

// CartRepository defines persistence operations for cart lines. The schema
// carries a uniqueness constraint on (user_id, item_id); AddOne must be an
// atomic conditional upsert against it so concurrent adds for the same pair
// collapse into a single row.
type CartRepository interface {
	// AddOne increments the quantity of the (userID, itemID) line by one,
	// creating it with quantity 1 when absent, in a single atomic statement.
	AddOne(ctx context.Context, userID, itemID string) (*entity.CartItem, error)
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	// ListByUser returns the user's cart lines with their Item expanded.
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	Delete(ctx context.Context, id string) error
}
