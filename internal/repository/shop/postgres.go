package shop

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

const shopColumns = `id::text, name, contact, address, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	const q = `
SELECT ` + shopColumns + `
FROM shops
WHERE id = $1
`
	var s domain.Shop
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Shop, error) {
	result := make(map[string]domain.Shop, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const q = `
SELECT ` + shopColumns + `
FROM shops
WHERE id = ANY($1::uuid[])
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.CreatedAt); err != nil {
			return nil, err
		}
		result[s.ID] = s
	}
	return result, rows.Err()
}
