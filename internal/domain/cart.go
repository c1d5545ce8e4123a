package domain

import "time"

// Cart holds a customer's pending items for a single shop. At most one cart
// exists per (customer, shop) pair; a cart is never persisted with zero items.
type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	ShopID     string     `json:"shopId"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem is one product line within a cart. A cart holds at most one item
// per product.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
