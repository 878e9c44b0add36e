package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/repository"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, title, description, price, image, large_image, user_id, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	it := &entity.Item{}
	if err := row.Scan(&it.ID, &it.Title, &it.Description, &it.Price,
		&it.Image, &it.LargeImage, &it.UserID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO items (title, description, price, image, large_image, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, it.Title, it.Description, it.Price, it.Image, it.LargeImage, it.UserID)

	return row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return scanItem(r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = $1
	`, id))
}

func (r *ItemRepository) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, it *entity.Item) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE items
		SET title = $1, description = $2, price = $3, image = $4, large_image = $5, updated_at = now()
		WHERE id = $6
	`, it.Title, it.Description, it.Price, it.Image, it.LargeImage, it.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
