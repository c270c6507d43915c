// Package kafka publishes order lifecycle events to a Kafka topic.
// Events are keyed by order id so all status changes of one order land
// in the same partition, in order.
package kafka

import (
	"context"
	"encoding/json"

	"fooddelivery/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderEventPublisher implements ports.OrderEventPublisher on top of a
// kafka-go writer.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher creates a publisher writing to the given
// brokers and topic.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishStatusChanged sends one status change event.
func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

// Close flushes pending messages and releases the writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
