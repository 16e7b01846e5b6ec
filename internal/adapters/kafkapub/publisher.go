// Package kafkapub publishes verified payment webhook events to Kafka for
// downstream consumers (fulfillment, notifications).
package kafkapub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher implements domain.EventPublisher on a kafka.Writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher writing to the given topic.
func NewPublisher(topic string, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

type paymentEventPayload struct {
	EventID         string `json:"event_id"`
	EventType       string `json:"event_type"`
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
	OccurredAt      string `json:"occurred_at"`
}

// PublishPaymentEvent writes the event keyed by intent id, so all events of
// one payment land in the same partition in order.
func (p *Publisher) PublishPaymentEvent(ctx context.Context, event domain.WebhookEvent, status domain.PaymentStatus) error {
	payload := paymentEventPayload{
		EventID:         uuid.New().String(),
		EventType:       event.Type,
		PaymentIntentID: event.PaymentIntentID,
		Status:          string(status),
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PaymentIntentID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write payment event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

// PublishPaymentEvent discards the event.
func (NoopPublisher) PublishPaymentEvent(context.Context, domain.WebhookEvent, domain.PaymentStatus) error {
	return nil
}
