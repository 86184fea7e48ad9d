package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SONUshilla/CartBackend/internal/domain"
	pkgkafka "github.com/SONUshilla/CartBackend/pkg/kafka"
)

// Kafka topic constants for order domain events.
const (
	TopicOrderCreated   = "cartbackend.order.created"
	TopicOrderCancelled = "cartbackend.order.cancelled"
)

// Aggregate type constant.
const AggregateTypeOrder = "order"

// Source identifier for events originating from this server.
const SourceCartBackend = "cartbackend"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	AddressID     string          `json:"address_id"`
	Status        string          `json:"status"`
	Items         []OrderItemData `json:"items"`
	TotalAmount   int64           `json:"total_amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// OrderItemData is the event payload for an order item.
type OrderItemData struct {
	ProductID string `json:"product_id"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderCancelledData is the payload for an order.cancelled event.
type OrderCancelledData struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

// Publisher is the event sink the services depend on. A nil-safe no-op
// implementation stands in when Kafka is disabled.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderCancelled(ctx context.Context, order *domain.Order) error
}

// Producer publishes order domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event with the order snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemData{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	data := OrderCreatedData{
		ID:            order.ID,
		UserID:        order.UserID,
		AddressID:     order.AddressID,
		Status:        order.Status,
		Items:         items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceCartBackend, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishOrderCancelled publishes an order.cancelled event.
func (p *Producer) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	data := OrderCancelledData{
		OrderID: order.ID,
		UserID:  order.UserID,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCancelled, order.ID, AggregateTypeOrder, SourceCartBackend, data)
	if err != nil {
		return fmt.Errorf("create order.cancelled event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCancelled, event); err != nil {
		return fmt.Errorf("publish order.cancelled event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.cancelled event",
		slog.String("order_id", order.ID),
	)

	return nil
}

// NopPublisher drops all events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, *domain.Order) error   { return nil }
func (NopPublisher) PublishOrderCancelled(context.Context, *domain.Order) error { return nil }
