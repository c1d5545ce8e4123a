package customer

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

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `id::text, name, email, mobile, address, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Email, &c.Mobile, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Customer, error) {
	result := make(map[string]domain.Customer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = ANY($1::uuid[])
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("customer repo: get by ids error=%v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Mobile, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		result[c.ID] = c
	}
	return result, rows.Err()
}
