package postgres

import (
	"context"
	"fmt"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/pkg/database"
)

// CheckoutRepository implements repository.CheckoutRepository using PostgreSQL.
type CheckoutRepository struct {
	pool database.DBTX
}

// NewCheckoutRepository creates a new PostgreSQL-backed checkout repository.
func NewCheckoutRepository(pool database.DBTX) *CheckoutRepository {
	return &CheckoutRepository{pool: pool}
}

// PlaceOrder writes a complete order in a single transaction: resolve or
// create the shipping address, insert the order header, insert one row per
// line item, then clear the user's cart. Any failure rolls back every step,
// leaving the cart intact. The cart clear is deliberately the last write.
func (r *CheckoutRepository) PlaceOrder(ctx context.Context, userID string, items []domain.OrderItem, address domain.AddressInput, paymentMethod string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	addressID, err := resolveOrCreateAddress(ctx, tx, userID, address)
	if err != nil {
		return "", err
	}

	var orderID string
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, address_id, status, total_amount, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID,
		addressID,
		domain.OrderStatusProcessing,
		domain.OrderTotal(items),
		paymentMethod,
	).Scan(&orderID)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return "", fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return "", fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return orderID, nil
}
