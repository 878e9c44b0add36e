package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateWithCartClear materializes the order and retires the cart in one
// transaction. charge_id is unique: a retry after a crash between charge and
// commit finds the stored order instead of inserting a second one, keeping
// the charge id as the idempotency key.
func (r *OrderRepository) CreateWithCartClear(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total, charge_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (charge_id) DO NOTHING
		RETURNING id, created_at
	`, o.UserID, o.Total, o.ChargeID)

	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already materialized for this charge.
			return r.getByChargeID(ctx, o.ChargeID)
		}
		return nil, err
	}

	for i := range o.Items {
		oi := &o.Items[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, title, description, price, image, large_image, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, o.ID, oi.Title, oi.Description, oi.Price, oi.Image, oi.LargeImage, oi.Quantity).Scan(&oi.ID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *OrderRepository) getByChargeID(ctx context.Context, chargeID string) (*entity.Order, error) {
	return r.getOne(ctx, `WHERE charge_id = $1`, chargeID)
}

func (r *OrderRepository) getOne(ctx context.Context, where string, arg any) (*entity.Order, error) {
	o := &entity.Order{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, total, charge_id, created_at FROM orders `+where, arg)
	if err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.ChargeID, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, price, image, large_image, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.OrderItem
	for rows.Next() {
		var oi entity.OrderItem
		if err := rows.Scan(&oi.ID, &oi.Title, &oi.Description, &oi.Price, &oi.Image, &oi.LargeImage, &oi.Quantity); err != nil {
			return nil, err
		}
		out = append(out, oi)
	}
	return out, rows.Err()
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, total, charge_id, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o := &entity.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.ChargeID, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := r.itemsFor(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
