package cart

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"trove-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Save replaces the session's snapshot in one transaction so a concurrent
// Load never observes a half-written cart.
func (r *postgresRepo) Save(ctx context.Context, sessionID string, items []domain.CartItem) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		return err
	}
	const insert = `
INSERT INTO cart_items (session_id, position, product_id, name, unit_price, image_ref, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for i, item := range items {
		if _, err := tx.Exec(ctx, insert,
			sessionID, i, item.ID, item.Name, item.UnitPrice.String(), item.ImageRef, item.Quantity,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) Load(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	const q = `
SELECT product_id, name, unit_price::text, image_ref, quantity
FROM cart_items
WHERE session_id = $1
ORDER BY position
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var price string
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.ImageRef, &item.Quantity); err != nil {
			return nil, err
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return items, nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	return err
}
