package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storefront/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	SessionID string                 `json:"session_id"`
	ProductID string                 `json:"product_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	TypeProductViewed = "product.viewed"
	TypeAddedToCart   = "cart.item_added"
)

// Publisher emits storefront activity events. When no brokers are configured
// it is a logging no-op: activity tracking must never break the storefront.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers, topic string, logger *logger.Logger) *Publisher {
	p := &Publisher{logger: logger}
	if brokers == "" {
		logger.Info("No Kafka brokers configured, activity events disabled")
		return p
	}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}
	return p
}

// Publish is fire-and-forget: failures are logged, not propagated.
func (p *Publisher) Publish(ctx context.Context, event Event) {
	event.ID = uuid.New().String()
	event.Timestamp = time.Now()

	if p.writer == nil {
		p.logger.Debug("Dropping event %s (%s): publisher disabled", event.Type, event.ProductID)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to encode event: %v", err)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to publish event %s: %v", event.Type, err)
	}
}

func (p *Publisher) ProductViewed(ctx context.Context, sessionID, productID string) {
	p.Publish(ctx, Event{
		Type:      TypeProductViewed,
		SessionID: sessionID,
		ProductID: productID,
	})
}

func (p *Publisher) AddedToCart(ctx context.Context, sessionID, productID string, quantity int) {
	p.Publish(ctx, Event{
		Type:      TypeAddedToCart,
		SessionID: sessionID,
		ProductID: productID,
		Data:      map[string]interface{}{"quantity": quantity},
	})
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
