package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order
// aggregates. Orders and their item snapshots are written together;
// the repository never exposes partial writes.
type OrderRepository interface {
	// Add persists a new order with all of its items in one atomic
	// write. Used exclusively by checkout.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Items are
	// immutable and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetReadyUnassigned retrieves orders in ready status with no
	// courier, created at or after the given cutoff. Used by push
	// dispatch and the background retry job; the cutoff implements
	// the soft recency window.
	GetReadyUnassigned(ctx context.Context, createdAfter time.Time) ([]*order.Order, error)

	// Claim atomically assigns a courier to a ready, unassigned order
	// and flips it to on_delivery. The write is a single conditional
	// update ("... where id matches and courier_id is still null");
	// the result is learned from the affected-row count, never from a
	// prior read. Returns false when another actor won the race —
	// a normal outcome, not an error.
	Claim(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID, now time.Time) (bool, error)
}
