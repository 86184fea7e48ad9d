package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/internal/event"
	"github.com/SONUshilla/CartBackend/internal/repository"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

// CheckoutService implements the order placement business logic.
type CheckoutService struct {
	repo     repository.CheckoutRepository
	producer event.Publisher
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(repo repository.CheckoutRepository, producer event.Publisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CheckoutItemInput holds one submitted cart line.
type CheckoutItemInput struct {
	ProductID string `json:"product_id"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CheckoutInput holds the parameters for placing an order.
type CheckoutInput struct {
	Items         []CheckoutItemInput `json:"cartItems"`
	Address       domain.AddressInput `json:"address"`
	PaymentMethod string              `json:"payment_method"`
}

// PlaceOrder validates the submitted cart and address, then persists the
// order atomically. All validation happens before anything is written, so a
// rejected checkout leaves no trace in storage. The total is always computed
// server-side from the submitted lines.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, input CheckoutInput) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthorized("authentication required")
	}
	if len(input.Items) == 0 {
		return "", apperrors.InvalidInput("cart must contain at least one item")
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			return "", apperrors.InvalidInput(fmt.Sprintf("cart item %d is missing a product id", i))
		}
		if item.Price <= 0 {
			return "", apperrors.InvalidInput(fmt.Sprintf("cart item %d has a non-positive price", i))
		}
		if item.Quantity <= 0 {
			return "", apperrors.InvalidInput(fmt.Sprintf("cart item %d has a non-positive quantity", i))
		}
	}
	if input.Address.ID == "" && !input.Address.HasRequiredFields() {
		return "", apperrors.AddressRequired()
	}

	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	orderID, err := s.repo.PlaceOrder(ctx, userID, items, input.Address, input.PaymentMethod)
	if err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}

	order := &domain.Order{
		ID:            orderID,
		UserID:        userID,
		Status:        domain.OrderStatusProcessing,
		Items:         items,
		TotalAmount:   domain.OrderTotal(items),
		PaymentMethod: input.PaymentMethod,
	}
	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", orderID),
		slog.String("user_id", userID),
		slog.Int64("total_amount", order.TotalAmount),
		slog.Int("item_count", len(items)),
	)

	return orderID, nil
}
