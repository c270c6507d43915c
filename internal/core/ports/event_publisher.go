package ports

import (
	"context"
	"time"
)

// OrderStatusChangedEvent notifies downstream consumers (notification
// delivery, analytics) that an order moved through its lifecycle.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	CourierID   *string   `json:"courier_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderEventPublisher pushes order lifecycle events to the outside
// world. Handlers call it strictly after a successful commit — never
// while a transaction is open — and treat publish failures as
// log-and-continue: the order state is already durable.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
