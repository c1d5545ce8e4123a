package order

import (
	"context"

	"marketplace-backend/internal/domain"
)

// Repository persists orders. Save overwrites the whole aggregate (order row,
// items, and cancellation history) by id, mirroring document-store semantics.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByShop(ctx context.Context, shopID string) ([]domain.Order, error)
}
