package order

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

const orderColumns = `id::text, customer_id::text, shop_id::text, status, delivery_otp, delivery_address, delivery_lat, delivery_lng, total_cents, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (customer_id, shop_id, status, delivery_otp, delivery_address, delivery_lat, delivery_lng, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text
`, o.CustomerID, o.ShopID, string(o.Status), o.DeliveryOTP, o.DeliveryAddress, o.DeliveryLat, o.DeliveryLng, o.TotalCents).Scan(&id); err != nil {
		return nil, err
	}

	if err := insertItems(ctx, tx, id, o.Items); err != nil {
		return nil, err
	}
	if err := insertCancellations(ctx, tx, id, o.CancelledItems); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	var o domain.Order
	var status string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID,
		&o.CustomerID,
		&o.ShopID,
		&status,
		&o.DeliveryOTP,
		&o.DeliveryAddress,
		&o.DeliveryLat,
		&o.DeliveryLng,
		&o.TotalCents,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.OrderStatus(status)

	if err := r.loadLines(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Save rewrites the full aggregate state for o.ID. Cancellation timestamps
// carried in o are preserved as stored values.
func (r *postgresRepo) Save(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE orders
SET status = $1,
    delivery_address = $2,
    delivery_lat = $3,
    delivery_lng = $4,
    total_cents = $5,
    updated_at = now()
WHERE id = $6
`, string(o.Status), o.DeliveryAddress, o.DeliveryLat, o.DeliveryLng, o.TotalCents, o.ID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return nil, err
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_cancellations WHERE order_id = $1`, o.ID); err != nil {
		return nil, err
	}
	if err := insertCancellations(ctx, tx, o.ID, o.CancelledItems); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, o.ID)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, customerID)
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE shop_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, shopID)
}

func (r *postgresRepo) list(ctx context.Context, query string, arg any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.ShopID,
			&status,
			&o.DeliveryOTP,
			&o.DeliveryAddress,
			&o.DeliveryLat,
			&o.DeliveryLng,
			&o.TotalCents,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, o *domain.Order) error {
	const itemsQuery = `
SELECT product_id::text, quantity, price_cents, mrp_cents
FROM order_items
WHERE order_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = nil
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.PriceCents, &item.MRPCents); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const cancelledQuery = `
SELECT product_id::text, product_name, quantity, price_cents, COALESCE(cancelled_by::text, ''), cancelled_at
FROM order_cancellations
WHERE order_id = $1
ORDER BY position ASC
`
	cancelled, err := r.pool.Query(ctx, cancelledQuery, o.ID)
	if err != nil {
		return err
	}
	defer cancelled.Close()

	o.CancelledItems = nil
	for cancelled.Next() {
		var item domain.CancelledItem
		if err := cancelled.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.PriceCents, &item.CancelledBy, &item.CancelledAt); err != nil {
			return err
		}
		o.CancelledItems = append(o.CancelledItems, item)
	}
	return cancelled.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	for i, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price_cents, mrp_cents, position)
VALUES ($1, $2, $3, $4, $5, $6)
`, orderID, item.ProductID, item.Quantity, item.PriceCents, item.MRPCents, i); err != nil {
			return err
		}
	}
	return nil
}

func insertCancellations(ctx context.Context, tx pgx.Tx, orderID string, items []domain.CancelledItem) error {
	for i, item := range items {
		var cancelledBy *string
		if item.CancelledBy != "" {
			cancelledBy = &item.CancelledBy
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO order_cancellations (order_id, product_id, product_name, quantity, price_cents, cancelled_by, cancelled_at, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, orderID, item.ProductID, item.ProductName, item.Quantity, item.PriceCents, cancelledBy, item.CancelledAt, i); err != nil {
			return err
		}
	}
	return nil
}
