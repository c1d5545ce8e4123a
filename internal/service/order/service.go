package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"marketplace-backend/internal/domain"
	orderrepo "marketplace-backend/internal/repository/order"
)

type Service struct {
	repo        orderRepo
	cartRepo    cartRepo
	productRepo productRepo
	logger      *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type cartRepo interface {
	DeleteAllForCustomerShop(ctx context.Context, customerID, shopID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo orderrepo.Repository, carts cartRepo, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cartRepo: carts, productRepo: products, logger: logger}
}

// CreateInput is a checkout request. Prices are caller-supplied snapshots;
// the catalog is not consulted at creation time.
type CreateInput struct {
	CustomerID      string      `json:"customerId"`
	ShopID          string      `json:"shopId"`
	Products        []LineInput `json:"products"`
	DeliveryAddress string      `json:"deliveryAddress"`
	DeliveryLat     *float64    `json:"deliveryLat"`
	DeliveryLng     *float64    `json:"deliveryLng"`
}

type LineInput struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	MRPCents   int64  `json:"mrpCents"`
}

// Create validates the checkout, snapshots prices into the order, issues a
// delivery OTP, persists it as pending, and then purges the originating cart.
// The purge is best effort: the order stands even when cleanup fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, domain.Validationf("customer ID is required")
	}
	if strings.TrimSpace(in.ShopID) == "" {
		return nil, domain.Validationf("shop ID is required")
	}
	if len(in.Products) == 0 {
		return nil, domain.Validationf("at least one product is required")
	}

	items := make([]domain.OrderItem, 0, len(in.Products))
	var total int64
	for _, line := range in.Products {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity <= 0 || line.PriceCents <= 0 {
			return nil, domain.Validationf("each product must have productId, quantity, and price")
		}
		mrp := line.MRPCents
		if mrp <= 0 {
			mrp = line.PriceCents
		}
		total += line.PriceCents * int64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
			MRPCents:   mrp,
		})
	}

	created, err := s.repo.Create(ctx, domain.Order{
		CustomerID:      in.CustomerID,
		ShopID:          in.ShopID,
		Items:           items,
		Status:          domain.OrderPending,
		DeliveryOTP:     generateOTP(),
		DeliveryAddress: in.DeliveryAddress,
		DeliveryLat:     in.DeliveryLat,
		DeliveryLng:     in.DeliveryLng,
		TotalCents:      total,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteAllForCustomerShop(ctx, in.CustomerID, in.ShopID); err != nil {
		s.logger.Printf("order service: purge carts customer=%s shop=%s error=%v", in.CustomerID, in.ShopID, err)
	}

	return created, nil
}

// CancelItem cancels quantity units of one product line, appending an audit
// entry and recomputing the total from the remaining lines. Status is left
// untouched, even when the last line is removed.
func (s *Service) CancelItem(ctx context.Context, orderID, productID string, quantity int, cancelledBy string) (*domain.Order, error) {
	if strings.TrimSpace(productID) == "" || quantity <= 0 {
		return nil, domain.Validationf("product ID and valid quantity to cancel are required")
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range order.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("product not in order: %w", domain.ErrNotFound)
	}

	current := order.Items[idx]
	if quantity > current.Quantity {
		return nil, domain.Validationf("cannot cancel %d items, only %d in order", quantity, current.Quantity)
	}

	name := "Product"
	if s.productRepo != nil {
		if p, err := s.productRepo.GetByID(ctx, productID); err == nil {
			name = p.Name
		}
	}

	if quantity == current.Quantity {
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
	} else {
		order.Items[idx].Quantity -= quantity
	}

	// One audit entry per call; prior cancellations of the same product are
	// never merged.
	order.CancelledItems = append(order.CancelledItems, domain.CancelledItem{
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		PriceCents:  current.PriceCents,
		CancelledBy: cancelledBy,
		CancelledAt: time.Now().UTC(),
	})

	// Full recompute over the remaining lines, not a subtraction.
	order.TotalCents = order.Total()

	return s.repo.Save(ctx, *order)
}

// UpdateStatus moves the order to any of the five known statuses. No
// transition graph is enforced.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validationf("invalid status, allowed values: pending, confirmed, shipped, delivered, cancelled")
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Status = status
	return s.repo.Save(ctx, *order)
}

// VerifyOTPAndDeliver marks the order delivered when the supplied OTP exactly
// matches the stored one. The OTP is not invalidated afterwards.
func (s *Service) VerifyOTPAndDeliver(ctx context.Context, orderID, otp string) (*domain.Order, error) {
	if strings.TrimSpace(otp) == "" {
		return nil, domain.Validationf("OTP is required")
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryOTP != otp {
		return nil, domain.ErrInvalidOTP
	}

	order.Status = domain.OrderDelivered
	return s.repo.Save(ctx, *order)
}

// generateOTP returns a uniformly random six digit delivery code in
// [100000, 999999].
func generateOTP() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
