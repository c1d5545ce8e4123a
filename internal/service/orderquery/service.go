// Package orderquery is the read side for orders: listings and detail views
// with customer, shop, and product references resolved to display
// projections. It never mutates order state.
package orderquery

import (
	"context"
	"time"

	"marketplace-backend/internal/domain"
)

type Service struct {
	orders    orderRepo
	customers customerRepo
	shops     shopRepo
	products  productRepo
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByShop(ctx context.Context, shopID string) ([]domain.Order, error)
}

type customerRepo interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Customer, error)
}

type shopRepo interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Shop, error)
}

type productRepo interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

func New(orders orderRepo, customers customerRepo, shops shopRepo, products productRepo) *Service {
	return &Service{orders: orders, customers: customers, shops: shops, products: products}
}

// OrderView is an order joined with display projections. Projections missing
// from the directories are left nil rather than failing the read.
type OrderView struct {
	ID              string              `json:"id"`
	Customer        *CustomerInfo       `json:"customer,omitempty"`
	Shop            *ShopInfo           `json:"shop,omitempty"`
	Items           []ItemView          `json:"items"`
	CancelledItems  []CancelledItemView `json:"cancelledItems,omitempty"`
	Status          domain.OrderStatus  `json:"orderStatus"`
	DeliveryOTP     string              `json:"deliveryOtp,omitempty"`
	DeliveryAddress string              `json:"deliveryAddress"`
	DeliveryLat     *float64            `json:"deliveryLat,omitempty"`
	DeliveryLng     *float64            `json:"deliveryLng,omitempty"`
	TotalCents      int64               `json:"totalCents"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type CustomerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type ShopInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type ProductInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	MRPCents   int64  `json:"mrpCents"`
}

type ItemView struct {
	ProductID  string       `json:"productId"`
	Quantity   int          `json:"quantity"`
	PriceCents int64        `json:"priceCents"`
	MRPCents   int64        `json:"mrpCents"`
	Product    *ProductInfo `json:"product,omitempty"`
}

type CancelledItemView struct {
	ProductID   string       `json:"productId"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	PriceCents  int64        `json:"priceCents"`
	CancelledBy string       `json:"cancelledBy,omitempty"`
	CancelledAt time.Time    `json:"cancelledAt"`
	Product     *ProductInfo `json:"product,omitempty"`
}

// ListByCustomer returns the customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]OrderView, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, orders)
}

// ListByShop returns the shop's orders, newest first.
func (s *Service) ListByShop(ctx context.Context, shopID string) ([]OrderView, error) {
	orders, err := s.orders.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, orders)
}

// GetByID returns a single joined order view.
func (s *Service) GetByID(ctx context.Context, orderID string) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	views, err := s.assemble(ctx, []domain.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) assemble(ctx context.Context, orders []domain.Order) ([]OrderView, error) {
	var customerIDs, shopIDs, productIDs []string
	seenCustomer := make(map[string]bool)
	seenShop := make(map[string]bool)
	seenProduct := make(map[string]bool)
	for _, o := range orders {
		if !seenCustomer[o.CustomerID] {
			seenCustomer[o.CustomerID] = true
			customerIDs = append(customerIDs, o.CustomerID)
		}
		if !seenShop[o.ShopID] {
			seenShop[o.ShopID] = true
			shopIDs = append(shopIDs, o.ShopID)
		}
		for _, item := range o.Items {
			if !seenProduct[item.ProductID] {
				seenProduct[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
		for _, item := range o.CancelledItems {
			if !seenProduct[item.ProductID] {
				seenProduct[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	customers, err := s.customers.GetByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	shops, err := s.shops.GetByIDs(ctx, shopIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view := OrderView{
			ID:              o.ID,
			Status:          o.Status,
			DeliveryOTP:     o.DeliveryOTP,
			DeliveryAddress: o.DeliveryAddress,
			DeliveryLat:     o.DeliveryLat,
			DeliveryLng:     o.DeliveryLng,
			TotalCents:      o.TotalCents,
			CreatedAt:       o.CreatedAt,
			UpdatedAt:       o.UpdatedAt,
		}
		if c, ok := customers[o.CustomerID]; ok {
			view.Customer = &CustomerInfo{ID: c.ID, Name: c.Name, Email: c.Email, Mobile: c.Mobile}
		}
		if sh, ok := shops[o.ShopID]; ok {
			view.Shop = &ShopInfo{ID: sh.ID, Name: sh.Name, Contact: sh.Contact}
		}
		for _, item := range o.Items {
			view.Items = append(view.Items, ItemView{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				PriceCents: item.PriceCents,
				MRPCents:   item.MRPCents,
				Product:    productInfo(products, item.ProductID),
			})
		}
		for _, item := range o.CancelledItems {
			view.CancelledItems = append(view.CancelledItems, CancelledItemView{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				PriceCents:  item.PriceCents,
				CancelledBy: item.CancelledBy,
				CancelledAt: item.CancelledAt,
				Product:     productInfo(products, item.ProductID),
			})
		}
		views = append(views, view)
	}
	return views, nil
}

func productInfo(products map[string]domain.Product, id string) *ProductInfo {
	p, ok := products[id]
	if !ok {
		return nil
	}
	return &ProductInfo{ID: p.ID, Name: p.Name, PriceCents: p.PriceCents, MRPCents: p.MRPCents}
}
