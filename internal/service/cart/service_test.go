package cart

import (
	"context"
	"errors"
	"testing"

	"marketplace-backend/internal/domain"
)

type stubRepo struct {
	existing    *domain.Cart
	existingErr error

	createErr  error
	replaceErr error
	deleteErr  error

	lastCreateCustomer string
	lastCreateShop     string
	lastCreateItems    []domain.CartItem
	lastReplaceID      string
	lastReplaceItems   []domain.CartItem
	deletedID          string
	deleteCalls        int

	listCarts []domain.Cart
	listErr   error
}

func (s *stubRepo) GetByCustomerShop(_ context.Context, _, _ string) (*domain.Cart, error) {
	if s.existingErr != nil {
		return nil, s.existingErr
	}
	return s.existing, nil
}

func (s *stubRepo) Create(_ context.Context, customerID, shopID string, items []domain.CartItem) (*domain.Cart, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastCreateCustomer = customerID
	s.lastCreateShop = shopID
	s.lastCreateItems = items
	return &domain.Cart{ID: "cart-1", CustomerID: customerID, ShopID: shopID, Items: items}, nil
}

func (s *stubRepo) ReplaceItems(_ context.Context, cartID string, items []domain.CartItem) (*domain.Cart, error) {
	if s.replaceErr != nil {
		return nil, s.replaceErr
	}
	s.lastReplaceID = cartID
	s.lastReplaceItems = items
	cart := *s.existing
	cart.Items = items
	return &cart, nil
}

func (s *stubRepo) Delete(_ context.Context, cartID string) error {
	s.deleteCalls++
	s.deletedID = cartID
	return s.deleteErr
}

func (s *stubRepo) ListByCustomer(_ context.Context, _ string) ([]domain.Cart, error) {
	return s.listCarts, s.listErr
}

type stubProductRepo struct {
	products map[string]domain.Product
	err      error
	lastIDs  []string
}

func (s *stubProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	s.lastIDs = ids
	return s.products, s.err
}

func itemsEqual(a, b []domain.CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergeAddRequiresIdentifiers(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	_, err := svc.MergeAdd(context.Background(), "", "shop", []AddItemInput{{ProductID: "p1"}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.MergeAdd(context.Background(), "cust", "shop", nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}
}

func TestMergeAddCreatesCartAndMergesBatchDuplicates(t *testing.T) {
	repo := &stubRepo{existingErr: domain.ErrNotFound}
	svc := &Service{repo: repo}

	res, err := svc.MergeAdd(context.Background(), "cust", "shop", []AddItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Created {
		t.Fatalf("expected created cart")
	}
	want := []domain.CartItem{{ProductID: "p1", Quantity: 5}, {ProductID: "p2", Quantity: 1}}
	if !itemsEqual(repo.lastCreateItems, want) {
		t.Fatalf("unexpected created items: %+v", repo.lastCreateItems)
	}
}

func TestMergeAddAccumulatesIntoExistingCart(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 5}, {ProductID: "p2", Quantity: 1}},
	}}
	svc := &Service{repo: repo}

	res, err := svc.MergeAdd(context.Background(), "cust", "shop", []AddItemInput{{ProductID: "p1", Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created {
		t.Fatalf("expected merge into existing cart, not creation")
	}
	want := []domain.CartItem{{ProductID: "p1", Quantity: 6}, {ProductID: "p2", Quantity: 1}}
	if !itemsEqual(repo.lastReplaceItems, want) {
		t.Fatalf("unexpected merged items: %+v", repo.lastReplaceItems)
	}
	if !itemsEqual(res.Cart.Items, want) {
		t.Fatalf("unexpected cart items: %+v", res.Cart.Items)
	}
}

func TestMergeAddPreservesFirstOccurrenceOrder(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p2", Quantity: 1}},
	}}
	svc := &Service{repo: repo}

	_, err := svc.MergeAdd(context.Background(), "cust", "shop", []AddItemInput{
		{ProductID: "p3", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.CartItem{{ProductID: "p2", Quantity: 3}, {ProductID: "p3", Quantity: 1}}
	if !itemsEqual(repo.lastReplaceItems, want) {
		t.Fatalf("expected old-then-new order, got %+v", repo.lastReplaceItems)
	}
}

func TestMergeAddCoercesQuantities(t *testing.T) {
	repo := &stubRepo{existingErr: domain.ErrNotFound}
	svc := &Service{repo: repo}

	_, err := svc.MergeAdd(context.Background(), "cust", "shop", []AddItemInput{
		{ProductID: "p1"},
		{ProductID: "p2", Quantity: -4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.CartItem{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 1}}
	if !itemsEqual(repo.lastCreateItems, want) {
		t.Fatalf("expected coerced quantities, got %+v", repo.lastCreateItems)
	}
}

func TestMergeAddRepoError(t *testing.T) {
	repo := &stubRepo{existingErr: errors.New("boom")}
	svc := &Service{repo: repo}
	_, err := svc.MergeAdd(context.Background(), "cust", "shop", []AddItemInput{{ProductID: "p1"}})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestUpdateItemQuantitySetsAbsoluteValue(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 5}},
	}}
	svc := &Service{repo: repo}

	res, err := svc.UpdateItemQuantity(context.Background(), "cust", "shop", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.CartItem{{ProductID: "p1", Quantity: 2}}
	if !itemsEqual(repo.lastReplaceItems, want) {
		t.Fatalf("expected absolute set, got %+v", repo.lastReplaceItems)
	}
	if res.Deleted {
		t.Fatalf("cart should not be deleted")
	}
}

func TestUpdateItemQuantityInsertsMissingItem(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 5}},
	}}
	svc := &Service{repo: repo}

	_, err := svc.UpdateItemQuantity(context.Background(), "cust", "shop", "p2", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.CartItem{{ProductID: "p1", Quantity: 5}, {ProductID: "p2", Quantity: 3}}
	if !itemsEqual(repo.lastReplaceItems, want) {
		t.Fatalf("expected inserted item, got %+v", repo.lastReplaceItems)
	}
}

func TestUpdateItemQuantityRemovesItem(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 5}, {ProductID: "p2", Quantity: 1}},
	}}
	svc := &Service{repo: repo}

	_, err := svc.UpdateItemQuantity(context.Background(), "cust", "shop", "p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.CartItem{{ProductID: "p2", Quantity: 1}}
	if !itemsEqual(repo.lastReplaceItems, want) {
		t.Fatalf("expected removal, got %+v", repo.lastReplaceItems)
	}
}

func TestUpdateItemQuantityRemovingMissingItemFails(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 5}},
	}}
	svc := &Service{repo: repo}

	_, err := svc.UpdateItemQuantity(context.Background(), "cust", "shop", "p9", 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.lastReplaceItems != nil {
		t.Fatalf("failed update must not persist anything")
	}
}

func TestUpdateItemQuantityDeletesEmptyCart(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{
		ID:    "cart-1",
		Items: []domain.CartItem{{ProductID: "p1", Quantity: 5}},
	}}
	svc := &Service{repo: repo}

	res, err := svc.UpdateItemQuantity(context.Background(), "cust", "shop", "p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Deleted {
		t.Fatalf("expected cart deletion")
	}
	if repo.deletedID != "cart-1" {
		t.Fatalf("unexpected deleted cart id %q", repo.deletedID)
	}
	if repo.lastReplaceItems != nil {
		t.Fatalf("empty cart must not be persisted")
	}
}

func TestUpdateItemQuantityNoCart(t *testing.T) {
	svc := &Service{repo: &stubRepo{existingErr: domain.ErrNotFound}}
	_, err := svc.UpdateItemQuantity(context.Background(), "cust", "shop", "p1", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCart(t *testing.T) {
	repo := &stubRepo{existing: &domain.Cart{ID: "cart-1"}}
	svc := &Service{repo: repo}
	if err := svc.Delete(context.Background(), "cust", "shop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != "cart-1" {
		t.Fatalf("unexpected deleted id %q", repo.deletedID)
	}

	svc = &Service{repo: &stubRepo{existingErr: domain.ErrNotFound}}
	if err := svc.Delete(context.Background(), "cust", "shop"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListForCustomerResolvesProducts(t *testing.T) {
	repo := &stubRepo{listCarts: []domain.Cart{
		{ID: "cart-1", CustomerID: "cust", ShopID: "shop-1", Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		}},
	}}
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Rice", PriceCents: 54900, MRPCents: 59900},
	}}
	svc := &Service{repo: repo, productRepo: products}

	views, err := svc.ListForCustomer(context.Background(), "cust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || len(views[0].Items) != 2 {
		t.Fatalf("unexpected views: %+v", views)
	}
	if views[0].Items[0].Product == nil || views[0].Items[0].Product.Name != "Rice" {
		t.Fatalf("expected resolved product, got %+v", views[0].Items[0].Product)
	}
	if views[0].Items[1].Product != nil {
		t.Fatalf("missing product should stay nil, got %+v", views[0].Items[1].Product)
	}
	if len(products.lastIDs) != 2 {
		t.Fatalf("expected deduplicated id lookup, got %v", products.lastIDs)
	}
}

func TestListForCustomerEmpty(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, productRepo: &stubProductRepo{}}
	views, err := svc.ListForCustomer(context.Background(), "cust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no views, got %+v", views)
	}
}
