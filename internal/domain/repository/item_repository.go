package repository

import (
	"context"

	"github.com/threadline/storefront/internal/domain/entity"
)

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	Create(ctx context.Context, it *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, it *entity.Item) error
	Delete(ctx context.Context, id string) error
}
