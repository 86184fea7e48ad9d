package domain

import "time"

// CartItem is one product line in a user's persisted cart. The cart is keyed
// by (user_id, product_id); adding the same product again merges quantities.
type CartItem struct {
	UserID    string    `json:"user_id,omitempty"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// LineTotal returns price times quantity for this cart line.
func (c *CartItem) LineTotal() int64 {
	return c.Price * int64(c.Quantity)
}
