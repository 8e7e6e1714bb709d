// Package events publishes order lifecycle events to Kafka. Publishing is
// best-effort: a fulfilled order must never be rolled back because a broker
// was unreachable.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"letsgo-store/internal/model"

	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"
)

// OrderCompleted is the payload emitted after a paid order has been
// persisted.
type OrderCompleted struct {
	OrderID     string    `json:"orderId"`
	CustomerID  *string   `json:"customerId,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	PaymentID   string    `json:"paymentId"`
	CompletedAt time.Time `json:"completedAt"`
}

// Publisher emits order lifecycle events.
type Publisher interface {
	PublishOrderCompleted(ctx context.Context, order *model.Order) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafkaGo.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Kafka-backed publisher. When no brokers are
// configured it returns a no-op publisher so callers never need a nil check.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	if len(brokers) == 0 {
		return &noopPublisher{}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkaGo.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func (p *kafkaPublisher) PublishOrderCompleted(ctx context.Context, order *model.Order) error {
	event := OrderCompleted{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		PaymentID:   order.PaymentID,
		CompletedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(order.ID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().Str("order_id", order.ID).Msg("published order.completed")
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (*noopPublisher) PublishOrderCompleted(context.Context, *model.Order) error { return nil }
func (*noopPublisher) Close() error                                              { return nil }
