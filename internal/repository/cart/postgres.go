package cart

import (
	"context"
	"errors"

	"marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const cartColumns = `id::text, customer_id::text, shop_id::text, created_at, updated_at`

func (r *postgresRepo) GetByCustomerShop(ctx context.Context, customerID, shopID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, customer_id::text, shop_id::text, created_at, updated_at
FROM carts
WHERE customer_id = $1 AND shop_id = $2
`
	return r.fetchCart(ctx, q, customerID, shopID)
}

func (r *postgresRepo) Create(ctx context.Context, customerID, shopID string, items []domain.CartItem) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	if err := tx.QueryRow(ctx, `
INSERT INTO carts (customer_id, shop_id)
VALUES ($1, $2)
RETURNING id::text
`, customerID, shopID).Scan(&id); err != nil {
		return nil, err
	}

	if err := insertItems(ctx, tx, id, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.getByID(ctx, id)
}

func (r *postgresRepo) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}
	if err := insertItems(ctx, tx, cartID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.getByID(ctx, cartID)
}

func (r *postgresRepo) Delete(ctx context.Context, cartID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteAllForCustomerShop(ctx context.Context, customerID, shopID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1 AND shop_id = $2`, customerID, shopID)
	return err
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error) {
	const q = `
SELECT id::text, customer_id::text, shop_id::text, created_at, updated_at
FROM carts
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.ID, &cart.CustomerID, &cart.ShopID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
			return nil, err
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range carts {
		items, err := r.loadItems(ctx, carts[i].ID)
		if err != nil {
			return nil, err
		}
		carts[i].Items = items
	}
	return carts, nil
}

func (r *postgresRepo) getByID(ctx context.Context, id string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `
SELECT `+cartColumns+`
FROM carts
WHERE id = $1
`, id)
}

func (r *postgresRepo) fetchCart(ctx context.Context, cartQuery string, args ...any) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, args...).Scan(
		&cart.ID,
		&cart.CustomerID,
		&cart.ShopID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	cart.Items, err = r.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	const q = `
SELECT product_id::text, quantity
FROM cart_items
WHERE cart_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, cartID string, items []domain.CartItem) error {
	for i, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity, position)
VALUES ($1, $2, $3, $4)
`, cartID, item.ProductID, item.Quantity, i); err != nil {
			return err
		}
	}
	return nil
}
