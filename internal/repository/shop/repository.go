package shop

import (
	"context"

	"marketplace-backend/internal/domain"
)

// Repository is a read-only view of the shop directory.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Shop, error)
}
