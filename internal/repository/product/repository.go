package product

import (
	"context"

	"marketplace-backend/internal/domain"
)

// Repository is a read-only view of the product catalog used for display
// joins and shop listings.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]domain.Product, error)
}
