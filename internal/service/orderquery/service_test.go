package orderquery

import (
	"context"
	"errors"
	"testing"

	"marketplace-backend/internal/domain"
)

type stubOrderRepo struct {
	orders []domain.Order
	err    error
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderRepo) ListByShop(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

type stubCustomerRepo struct {
	customers map[string]domain.Customer
	lastIDs   []string
}

func (s *stubCustomerRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Customer, error) {
	s.lastIDs = ids
	return s.customers, nil
}

type stubShopRepo struct {
	shops map[string]domain.Shop
}

func (s *stubShopRepo) GetByIDs(_ context.Context, _ []string) (map[string]domain.Shop, error) {
	return s.shops, nil
}

type stubProductRepo struct {
	products map[string]domain.Product
	lastIDs  []string
}

func (s *stubProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	s.lastIDs = ids
	return s.products, nil
}

func fixtureOrders() []domain.Order {
	return []domain.Order{
		{
			ID:         "order-1",
			CustomerID: "cust-1",
			ShopID:     "shop-1",
			Status:     domain.OrderConfirmed,
			Items: []domain.OrderItem{
				{ProductID: "p1", Quantity: 2, PriceCents: 10000, MRPCents: 12000},
			},
			CancelledItems: []domain.CancelledItem{
				{ProductID: "p2", ProductName: "Sugar", Quantity: 1, PriceCents: 4000, CancelledBy: "customer"},
			},
			TotalCents: 20000,
		},
		{
			ID:         "order-2",
			CustomerID: "cust-1",
			ShopID:     "shop-1",
			Status:     domain.OrderPending,
			Items: []domain.OrderItem{
				{ProductID: "p1", Quantity: 1, PriceCents: 10000, MRPCents: 12000},
			},
			TotalCents: 10000,
		},
	}
}

func newTestService(orders *stubOrderRepo, customers *stubCustomerRepo, shops *stubShopRepo, products *stubProductRepo) *Service {
	return &Service{orders: orders, customers: customers, shops: shops, products: products}
}

func TestListByCustomerJoinsProjections(t *testing.T) {
	customers := &stubCustomerRepo{customers: map[string]domain.Customer{
		"cust-1": {ID: "cust-1", Name: "Asha", Email: "asha@example.com", Mobile: "9000000001"},
	}}
	shops := &stubShopRepo{shops: map[string]domain.Shop{
		"shop-1": {ID: "shop-1", Name: "Demo Grocery", Contact: "9000000002"},
	}}
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Rice", PriceCents: 10000, MRPCents: 12000},
	}}
	svc := newTestService(&stubOrderRepo{orders: fixtureOrders()}, customers, shops, products)

	views, err := svc.ListByCustomer(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	v := views[0]
	if v.Customer == nil || v.Customer.Name != "Asha" {
		t.Fatalf("unexpected customer projection: %+v", v.Customer)
	}
	if v.Shop == nil || v.Shop.Name != "Demo Grocery" {
		t.Fatalf("unexpected shop projection: %+v", v.Shop)
	}
	if len(v.Items) != 1 || v.Items[0].Product == nil || v.Items[0].Product.Name != "Rice" {
		t.Fatalf("unexpected item projection: %+v", v.Items)
	}
	// p2 is only referenced by the audit trail; it is missing from the
	// catalog, so its projection stays nil while the snapshot survives.
	if len(v.CancelledItems) != 1 {
		t.Fatalf("expected one cancelled item, got %+v", v.CancelledItems)
	}
	if v.CancelledItems[0].Product != nil {
		t.Fatalf("missing product projection must be nil: %+v", v.CancelledItems[0].Product)
	}
	if v.CancelledItems[0].ProductName != "Sugar" {
		t.Fatalf("snapshot name lost: %+v", v.CancelledItems[0])
	}
}

func TestAssembleDeduplicatesLookups(t *testing.T) {
	customers := &stubCustomerRepo{customers: map[string]domain.Customer{}}
	products := &stubProductRepo{products: map[string]domain.Product{}}
	svc := newTestService(&stubOrderRepo{orders: fixtureOrders()}, customers, &stubShopRepo{}, products)

	if _, err := svc.ListByShop(context.Background(), "shop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers.lastIDs) != 1 {
		t.Fatalf("customer ids not deduplicated: %v", customers.lastIDs)
	}
	// p1 appears in both orders, p2 only in the audit trail.
	if len(products.lastIDs) != 2 {
		t.Fatalf("product ids not deduplicated: %v", products.lastIDs)
	}
}

func TestGetByIDMissingProjectionsStayNil(t *testing.T) {
	svc := newTestService(
		&stubOrderRepo{orders: fixtureOrders()},
		&stubCustomerRepo{},
		&stubShopRepo{},
		&stubProductRepo{},
	)

	view, err := svc.GetByID(context.Background(), "order-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ID != "order-2" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Customer != nil || view.Shop != nil {
		t.Fatalf("missing projections must be nil: %+v", view)
	}
	if view.Items[0].Product != nil {
		t.Fatalf("missing product projection must be nil: %+v", view.Items[0])
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&stubOrderRepo{orders: fixtureOrders()}, &stubCustomerRepo{}, &stubShopRepo{}, &stubProductRepo{})
	if _, err := svc.GetByID(context.Background(), "order-9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRepoError(t *testing.T) {
	svc := newTestService(&stubOrderRepo{err: errors.New("boom")}, &stubCustomerRepo{}, &stubShopRepo{}, &stubProductRepo{})
	if _, err := svc.ListByCustomer(context.Background(), "cust-1"); err == nil {
		t.Fatalf("expected error")
	}
}
