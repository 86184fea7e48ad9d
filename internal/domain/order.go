package domain

import "time"

// Order status constants. An order is created as processing and may only ever
// move to cancelled; there are no other states.
const (
	OrderStatusProcessing = "processing"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a placed order header.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	AddressID     string      `json:"address_id"`
	Status        string      `json:"status"`
	TotalAmount   int64       `json:"total_amount"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CanCancel reports whether the order may be cancelled. Cancelling an already
// cancelled order is allowed so the operation stays idempotent.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusProcessing || o.Status == OrderStatusCancelled
}
