package domain

import "time"

// Product is the catalog projection used for display joins. Orders never read
// prices from here at creation time; callers supply the snapshot price.
type Product struct {
	ID         string    `json:"id"`
	ShopID     string    `json:"shopId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	MRPCents   int64     `json:"mrpCents"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Shop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
