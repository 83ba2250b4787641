package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	pkgkafka "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicProductCreated = "gibsons.product.created"
	TopicProductUpdated = "gibsons.product.updated"
	TopicProductDeleted = "gibsons.product.deleted"
	TopicOrderSubmitted = "gibsons.order.submitted"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeOrder   = "order"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront"

// Publisher is the event surface the services depend on.
type Publisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, productID string) error
	PublishOrderSubmitted(ctx context.Context, clientID string, order *domain.Order, items []domain.CartItem) error
}

// ProductEventData is the payload for product.created and product.updated events.
type ProductEventData struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Category string   `json:"category"`
	Images   []string `json:"images"`
	Quantity *int     `json:"quantity,omitempty"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// OrderItemData is one cart line inside an order.submitted event.
type OrderItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderSubmittedData is the payload for an order.submitted event.
type OrderSubmittedData struct {
	ClientID string          `json:"client_id"`
	Subtotal int64           `json:"subtotal"`
	Items    []OrderItemData `json:"items"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productData(product *domain.Product) ProductEventData {
	return ProductEventData{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		Images:   product.Images,
		Quantity: product.Quantity,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceStorefront, productData(product))
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductUpdated, product.ID, AggregateTypeProduct, SourceStorefront, productData(product))
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, productID string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, productID, AggregateTypeProduct, SourceStorefront, ProductDeletedData{ID: productID})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", productID),
	)

	return nil
}

// PublishOrderSubmitted publishes an order.submitted event when a checkout
// message has been composed and handed off.
func (p *Producer) PublishOrderSubmitted(ctx context.Context, clientID string, order *domain.Order, items []domain.CartItem) error {
	data := OrderSubmittedData{
		ClientID: clientID,
		Subtotal: order.Subtotal,
		Items:    make([]OrderItemData, 0, len(items)),
	}
	for i := range items {
		data.Items = append(data.Items, OrderItemData{
			ProductID: items[i].ID,
			Name:      items[i].Name,
			Price:     items[i].Price,
			Quantity:  items[i].Quantity,
		})
	}

	event, err := pkgkafka.NewEvent(TopicOrderSubmitted, clientID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderSubmitted, event); err != nil {
		return fmt.Errorf("publish order.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.submitted event",
		slog.String("client_id", clientID),
		slog.Int64("subtotal", order.Subtotal),
	)

	return nil
}
