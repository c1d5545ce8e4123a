package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed ids keep repeated seed runs idempotent via ON CONFLICT upserts.
var (
	demoShopID      = uuid.MustParse("6f1f81c9-5de4-4f41-8f0a-2a4f3a1d9b01")
	demoCustomerID  = uuid.MustParse("6f1f81c9-5de4-4f41-8f0a-2a4f3a1d9b02")
	demoCustomer2ID = uuid.MustParse("6f1f81c9-5de4-4f41-8f0a-2a4f3a1d9b03")
)

type productSeed struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	MRPCents   int64
	ImageURL   string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := upsertShop(ctx, pool, demoShopID, "Demo Grocery", "+91-9000000001", "12 Market Road"); err != nil {
		return fmt.Errorf("upsert shop: %w", err)
	}

	if err := upsertCustomer(ctx, pool, demoCustomerID, "Asha Demo", "asha@example.com", "+91-9000000002"); err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}
	if err := upsertCustomer(ctx, pool, demoCustomer2ID, "Ravi Demo", "ravi@example.com", "+91-9000000003"); err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}

	products := []productSeed{
		{
			ID:         uuid.MustParse("6f1f81c9-5de4-4f41-8f0a-2a4f3a1d9b10"),
			Name:       "Basmati Rice 5kg",
			PriceCents: 54900,
			MRPCents:   59900,
			ImageURL:   "https://images.example.com/rice.jpg",
		},
		{
			ID:         uuid.MustParse("6f1f81c9-5de4-4f41-8f0a-2a4f3a1d9b11"),
			Name:       "Sunflower Oil 1L",
			PriceCents: 14500,
			MRPCents:   16000,
			ImageURL:   "https://images.example.com/oil.jpg",
		},
		{
			ID:         uuid.MustParse("6f1f81c9-5de4-4f41-8f0a-2a4f3a1d9b12"),
			Name:       "Tea Leaves 500g",
			PriceCents: 23000,
			MRPCents:   23000,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, demoShopID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func upsertShop(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, name, contact, address string) error {
	const q = `
INSERT INTO shops (id, name, contact, address)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, contact = EXCLUDED.contact, address = EXCLUDED.address
`
	_, err := pool.Exec(ctx, q, id, name, contact, address)
	return err
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, name, email, mobile string) error {
	const q = `
INSERT INTO customers (id, name, email, mobile)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, mobile = EXCLUDED.mobile
`
	_, err := pool.Exec(ctx, q, id, name, email, mobile)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, shopID uuid.UUID, p productSeed) error {
	const q = `
INSERT INTO products (id, shop_id, name, price_cents, mrp_cents, image_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    mrp_cents = EXCLUDED.mrp_cents,
    image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, p.ID, shopID, p.Name, p.PriceCents, p.MRPCents, p.ImageURL)
	return err
}
