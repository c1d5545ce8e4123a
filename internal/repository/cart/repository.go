package cart

import (
	"context"

	"marketplace-backend/internal/domain"
)

// Repository persists carts keyed by (customer, shop). Item writes replace the
// whole item list so that the stored cart always matches one merged state.
type Repository interface {
	GetByCustomerShop(ctx context.Context, customerID, shopID string) (*domain.Cart, error)
	Create(ctx context.Context, customerID, shopID string, items []domain.CartItem) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) (*domain.Cart, error)
	Delete(ctx context.Context, cartID string) error
	DeleteAllForCustomerShop(ctx context.Context, customerID, shopID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error)
}
