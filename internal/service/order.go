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

// OrderService implements order history queries and cancellation.
type OrderService struct {
	repo     repository.OrderRepository
	producer event.Publisher
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer event.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ListOrders returns the user's orders, newest first. A user with no orders
// gets an empty list, not an error.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder retrieves one of the user's orders with its shipping address.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, *domain.Address, error) {
	if userID == "" {
		return nil, nil, apperrors.Unauthorized("authentication required")
	}
	order, address, err := s.repo.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("get order: %w", err)
	}
	return order, address, nil
}

// CancelOrder moves one of the user's orders to cancelled. Cancelling an
// already cancelled order succeeds and returns the unchanged order.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	order, err := s.repo.Cancel(ctx, userID, orderID)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	if err := s.producer.PublishOrderCancelled(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.cancelled event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order cancelled",
		slog.String("order_id", orderID),
		slog.String("user_id", userID),
	)

	return order, nil
}
