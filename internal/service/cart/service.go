package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace-backend/internal/domain"
	cartrepo "marketplace-backend/internal/repository/cart"
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	GetByCustomerShop(ctx context.Context, customerID, shopID string) (*domain.Cart, error)
	Create(ctx context.Context, customerID, shopID string, items []domain.CartItem) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) (*domain.Cart, error)
	Delete(ctx context.Context, cartID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error)
}

type productRepo interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

func New(repo cartrepo.Repository, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// AddItemInput is one incoming add-to-cart line. Quantity is coerced to 1
// when absent or not positive; the intake is permissive rather than strict.
type AddItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// MergeResult reports the persisted cart and whether it was newly created.
type MergeResult struct {
	Cart    *domain.Cart
	Created bool
}

// MergeAdd folds the incoming items into the single cart for the
// (customer, shop) pair, summing quantities per product. Repeated adds of the
// same product accumulate; they never produce duplicate lines.
func (s *Service) MergeAdd(ctx context.Context, customerID, shopID string, items []AddItemInput) (*MergeResult, error) {
	if strings.TrimSpace(customerID) == "" || strings.TrimSpace(shopID) == "" {
		return nil, domain.Validationf("customerId and shopId are required")
	}
	if len(items) == 0 {
		return nil, domain.Validationf("productId or items array required")
	}

	incoming := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, domain.Validationf("every item requires a productId")
		}
		incoming = append(incoming, domain.CartItem{
			ProductID: item.ProductID,
			Quantity:  coerceQuantity(item.Quantity),
		})
	}

	existing, err := s.repo.GetByCustomerShop(ctx, customerID, shopID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		cart, err := s.repo.Create(ctx, customerID, shopID, mergeItems(nil, incoming))
		if err != nil {
			return nil, err
		}
		return &MergeResult{Cart: cart, Created: true}, nil
	}

	cart, err := s.repo.ReplaceItems(ctx, existing.ID, mergeItems(existing.Items, incoming))
	if err != nil {
		return nil, err
	}
	return &MergeResult{Cart: cart}, nil
}

// UpdateResult reports the persisted cart, or Deleted when removing the last
// item destroyed the cart document.
type UpdateResult struct {
	Cart    *domain.Cart
	Deleted bool
}

// UpdateItemQuantity sets the item's quantity to the given absolute value.
// A positive quantity inserts the item when missing; a non-positive quantity
// removes it. Removing the last item deletes the cart entirely.
func (s *Service) UpdateItemQuantity(ctx context.Context, customerID, shopID, productID string, quantity int) (*UpdateResult, error) {
	cart, err := s.repo.GetByCustomerShop(ctx, customerID, shopID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}

	items := append([]domain.CartItem(nil), cart.Items...)
	switch {
	case idx == -1 && quantity > 0:
		items = append(items, domain.CartItem{ProductID: productID, Quantity: quantity})
	case idx == -1:
		return nil, fmt.Errorf("item %s not in cart: %w", productID, domain.ErrNotFound)
	case quantity > 0:
		items[idx].Quantity = quantity
	default:
		items = append(items[:idx], items[idx+1:]...)
	}

	if len(items) == 0 {
		if err := s.repo.Delete(ctx, cart.ID); err != nil {
			return nil, err
		}
		return &UpdateResult{Deleted: true}, nil
	}

	updated, err := s.repo.ReplaceItems(ctx, cart.ID, items)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{Cart: updated}, nil
}

// Delete removes the cart for the (customer, shop) pair.
func (s *Service) Delete(ctx context.Context, customerID, shopID string) error {
	cart, err := s.repo.GetByCustomerShop(ctx, customerID, shopID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, cart.ID)
}

// View is a cart with its product references resolved to current catalog
// projections for display. The join is read-only.
type View struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	ShopID     string     `json:"shopId"`
	Items      []ItemView `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type ItemView struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   *domain.Product `json:"product,omitempty"`
}

// ListForCustomer returns every cart the customer has, across shops.
func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]View, error) {
	carts, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]bool)
	for _, cart := range carts {
		for _, item := range cart.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	products := map[string]domain.Product{}
	if len(ids) > 0 {
		products, err = s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]View, 0, len(carts))
	for _, cart := range carts {
		view := View{
			ID:         cart.ID,
			CustomerID: cart.CustomerID,
			ShopID:     cart.ShopID,
			CreatedAt:  cart.CreatedAt,
			UpdatedAt:  cart.UpdatedAt,
		}
		for _, item := range cart.Items {
			iv := ItemView{ProductID: item.ProductID, Quantity: item.Quantity}
			if p, ok := products[item.ProductID]; ok {
				iv.Product = &p
			}
			view.Items = append(view.Items, iv)
		}
		views = append(views, view)
	}
	return views, nil
}

// mergeItems unions old and incoming items, summing quantities per product.
// Result order is first occurrence across old then incoming.
func mergeItems(old, incoming []domain.CartItem) []domain.CartItem {
	index := make(map[string]int, len(old)+len(incoming))
	merged := make([]domain.CartItem, 0, len(old)+len(incoming))
	for _, item := range old {
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	for _, item := range incoming {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func coerceQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}
