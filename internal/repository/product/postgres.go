package product

import (
	"context"
	"errors"
	"io"
	"log"

	"marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, shop_id::text, name, price_cents, mrp_cents, COALESCE(image_url, ''), created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.ShopID, &p.Name, &p.PriceCents, &p.MRPCents, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	result := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: get by ids error=%v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.PriceCents, &p.MRPCents, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	return result, rows.Err()
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE shop_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, shopID)
	if err != nil {
		r.logger.Printf("product repo: list shop_id=%s error=%v", shopID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.PriceCents, &p.MRPCents, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
