package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// AddOne relies on the UNIQUE (user_id, item_id) constraint: the conditional
// upsert makes concurrent adds for the same pair serialize into a single row
// instead of each observing "not found" and inserting.
func (r *CartRepository) AddOne(ctx context.Context, userID, itemID string) (*entity.CartItem, error) {
	ci := &entity.CartItem{UserID: userID, ItemID: itemID}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO cart_items (user_id, item_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = now()
		RETURNING id, quantity, created_at, updated_at
	`, userID, itemID)

	if err := row.Scan(&ci.ID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt); err != nil {
		return nil, err
	}
	return ci, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	ci := &entity.CartItem{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, item_id, quantity, created_at, updated_at
		FROM cart_items WHERE id = $1
	`, id)
	if err := row.Scan(&ci.ID, &ci.UserID, &ci.ItemID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ci, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_id, c.item_id, c.quantity, c.created_at, c.updated_at,
		       i.id, i.title, i.description, i.price, i.image, i.large_image, i.user_id, i.created_at, i.updated_at
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.CartItem
	for rows.Next() {
		ci := &entity.CartItem{Item: &entity.Item{}}
		it := ci.Item
		if err := rows.Scan(&ci.ID, &ci.UserID, &ci.ItemID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt,
			&it.ID, &it.Title, &it.Description, &it.Price, &it.Image, &it.LargeImage, &it.UserID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	return out, rows.Err()
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
