package customer

import (
	"context"

	"marketplace-backend/internal/domain"
)

// Repository is a read-only view of the customer directory.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Customer, error)
}
