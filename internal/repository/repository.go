package repository

import (
	"context"

	"github.com/SONUshilla/CartBackend/internal/domain"
)

// AddressRepository defines the interface for address book persistence.
// All operations are scoped to the owning user; an address belonging to a
// different user behaves exactly like a missing one.
type AddressRepository interface {
	// ResolveOrCreate returns the id of the live address referenced by
	// in.ID, or inserts a new address from the submitted fields when no id
	// is given. A supplied id that does not match a live address owned by
	// userID is an error, never a silent insert.
	ResolveOrCreate(ctx context.Context, userID string, in domain.AddressInput) (string, error)

	// GetByID retrieves a live address owned by userID.
	GetByID(ctx context.Context, userID, addressID string) (*domain.Address, error)

	// List returns the user's live addresses, default first, then most
	// recently updated.
	List(ctx context.Context, userID string) ([]domain.Address, error)

	// SetDefault makes addressID the user's only default address.
	SetDefault(ctx context.Context, userID, addressID string) error

	// Update applies the submitted fields to a live address.
	Update(ctx context.Context, userID, addressID string, in domain.AddressInput) (*domain.Address, error)

	// SoftDelete marks a live address deleted and returns its final state.
	SoftDelete(ctx context.Context, userID, addressID string) (*domain.Address, error)
}

// CartRepository defines the interface for the persisted cart.
type CartRepository interface {
	// Upsert adds the item to the cart, merging quantities when the
	// product is already present.
	Upsert(ctx context.Context, item *domain.CartItem) error

	// List returns the user's cart contents.
	List(ctx context.Context, userID string) ([]domain.CartItem, error)

	// Remove deletes one product line from the user's cart.
	Remove(ctx context.Context, userID, productID string) error
}

// CheckoutRepository persists a complete order placement atomically:
// address resolution, order header, order items, and cart clearing all
// commit or roll back together.
type CheckoutRepository interface {
	PlaceOrder(ctx context.Context, userID string, items []domain.OrderItem, address domain.AddressInput, paymentMethod string) (string, error)
}

// OrderRepository defines the interface for reading and cancelling orders.
type OrderRepository interface {
	// ListByUser returns the user's orders, newest first, items included.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// GetByID retrieves one order with its items and shipping address.
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, *domain.Address, error)

	// Cancel moves the order to cancelled and returns its updated state.
	// Cancelling an already cancelled order succeeds unchanged.
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

// ProductRepository defines the interface for the read-only catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
