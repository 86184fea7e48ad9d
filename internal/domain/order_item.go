package domain

// OrderItem is a line item captured at order time. Price is the unit price in
// cents as it was when the order was placed; Name and ImageURL are joined from
// the current catalog for display and may be empty if the product is gone.
type OrderItem struct {
	OrderID   string `json:"order_id,omitempty"`
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns the total price for this line item.
func (i *OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// OrderTotal sums the line totals of all items.
func OrderTotal(items []OrderItem) int64 {
	var total int64
	for i := range items {
		total += items[i].LineTotal()
	}
	return total
}
