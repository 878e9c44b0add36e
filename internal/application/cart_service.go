package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/repository"
)

// CartService consolidates cart lines: at most one line per (user, item).
type CartService struct {
	Carts  repository.CartRepository
	Items  repository.ItemRepository
	Logger *logrus.Logger
}

func NewCartService(carts repository.CartRepository, items repository.ItemRepository, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Items: items, Logger: logger}
}

// AddToCart adds one unit of the item to the user's cart. The increment-or-
// create step is a single atomic upsert at the persistence boundary, so
// concurrent adds for the same pair end up as one line with the summed
// quantity.
func (s *CartService) AddToCart(ctx context.Context, userID, itemID string) (*entity.CartItem, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	if _, err := s.Items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Carts.AddOne(ctx, userID, itemID)
}

// RemoveFromCart deletes a cart line owned by the requesting user.
func (s *CartService) RemoveFromCart(ctx context.Context, cartItemID, requestingUserID string) error {
	ci, err := s.Carts.GetByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if ci.UserID != requestingUserID {
		return ErrNotOwner
	}
	return s.Carts.Delete(ctx, cartItemID)
}

// ListCart returns the user's cart lines with item snapshots expanded.
func (s *CartService) ListCart(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	return s.Carts.ListByUser(ctx, userID)
}
