package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// publishStatusChanged emits the lifecycle event for an order's current
// state. Handlers call it strictly after commit; publish failures are
// logged and swallowed because the state change is already durable.
func publishStatusChanged(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	if publisher == nil {
		return
	}

	event := ports.OrderStatusChangedEvent{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status().String(),
		OccurredAt:  aggregate.UpdatedAt(),
	}
	if courierID := aggregate.CourierID(); courierID != nil {
		id := courierID.String()
		event.CourierID = &id
	}

	if err := publisher.PublishStatusChanged(ctx, event); err != nil {
		logger.Error("failed to publish order status event",
			"order_number", aggregate.OrderNumber(),
			"status", aggregate.Status().String(),
			"error", err,
		)
	}
}
