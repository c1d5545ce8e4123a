package domain

import "time"

// OrderStatus is the lifecycle state of an order. Any status may move to any
// other status; no transition graph is enforced beyond membership.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a checkout for one (customer, shop) pair. Item prices are
// snapshotted at creation time and never re-read from the catalog.
type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	ShopID          string          `json:"shopId"`
	Items           []OrderItem     `json:"items"`
	CancelledItems  []CancelledItem `json:"cancelledItems,omitempty"`
	Status          OrderStatus     `json:"orderStatus"`
	DeliveryOTP     string          `json:"deliveryOtp,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress"`
	DeliveryLat     *float64        `json:"deliveryLat,omitempty"`
	DeliveryLng     *float64        `json:"deliveryLng,omitempty"`
	TotalCents      int64           `json:"totalCents"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem is one product line within an order. Price and MRP are the values
// at order time, in cents.
type OrderItem struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	MRPCents   int64  `json:"mrpCents"`
}

// CancelledItem is one append-only audit record of a cancellation. Each
// cancellation call produces its own entry; entries for the same product are
// never merged.
type CancelledItem struct {
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"priceCents"`
	CancelledBy string    `json:"cancelledBy,omitempty"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// Total sums price times quantity over the remaining items.
func (o *Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}
