package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/pkg/database"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Every query is scoped by (order id, user id) so one user's order ids are
// indistinguishable from missing ones to another user.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, user_id, address_id, status, total_amount, payment_method, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.AddressID,
		&o.Status,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders newest first, each with its items.
// Item name and image come from the current catalog; the price is the one
// captured at order time.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		orderColumns,
	)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	// Batch-load items for all orders in a single query to avoid N+1.
	orderIDs := make([]string, len(orders))
	for i := range orders {
		orderIDs[i] = orders[i].ID
	}
	itemsByOrderID, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if items, ok := itemsByOrderID[orders[i].ID]; ok {
			orders[i].Items = items
		} else {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return orders, nil
}

// GetByID retrieves one order with its items and the shipping address snapshot.
func (r *OrderRepository) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, *domain.Address, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`,
		orderColumns,
	)
	o, err := scanOrder(r.pool.QueryRow(ctx, query, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NotFound("order", orderID)
		}
		return nil, nil, fmt.Errorf("get order: %w", err)
	}

	itemsByOrderID, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, nil, err
	}
	o.Items = itemsByOrderID[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}

	// The address may be soft-deleted since the order was placed; it is
	// still the order's shipping snapshot, so no deleted_at filter here.
	addrQuery := fmt.Sprintf(
		`SELECT %s FROM addresses WHERE id = $1`,
		addressColumns,
	)
	address, err := scanAddress(r.pool.QueryRow(ctx, addrQuery, o.AddressID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, nil, nil
		}
		return nil, nil, fmt.Errorf("get order address: %w", err)
	}
	return o, address, nil
}

// Cancel moves the order to cancelled and returns its updated state. A second
// cancel of the same order is a no-op that still succeeds.
func (r *OrderRepository) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING %s`,
		orderColumns,
	)
	o, err := scanOrder(r.pool.QueryRow(ctx, query, domain.OrderStatusCancelled, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	return o, nil
}

// loadItems fetches items for the given orders joined with the live catalog
// for display name and image, grouped by order id.
func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	query := `
		SELECT oi.order_id, oi.product_id, COALESCE(p.name, ''), COALESCE(p.image_url, ''), oi.price, oi.quantity
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.product_id`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	itemsByOrderID := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.ImageURL,
			&item.Price,
			&item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		itemsByOrderID[item.OrderID] = append(itemsByOrderID[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}
	return itemsByOrderID, nil
}
