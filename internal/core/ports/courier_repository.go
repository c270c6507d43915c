package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for couriers.
type CourierRepository interface {
	// Add persists a newly registered courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists courier changes (availability toggles).
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves couriers that are online and not
	// currently holding an on_delivery order. Mid-delivery exclusion
	// is computed against the orders table at query time so it can
	// never go stale.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}

// TaskRepository defines the persistence contract for delivery tasks.
// The orders column carries a uniqueness constraint, so inserting a
// second task for the same order fails at the storage layer.
type TaskRepository interface {
	// Add persists a freshly created task. Must run in the same
	// transaction as the claim that produced it.
	Add(ctx context.Context, aggregate *courier.Task) error

	// Update persists task sub-lifecycle changes.
	Update(ctx context.Context, aggregate *courier.Task) error

	// Get retrieves a task by identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Task, error)

	// GetByOrderID retrieves the unique task for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*courier.Task, error)
}
