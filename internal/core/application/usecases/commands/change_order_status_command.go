package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order through its lifecycle on
// behalf of an authenticated actor. The transition graph and the
// per-role rights both live on the order aggregate; the command only
// carries who wants what.
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	actorID kernel.UUID
	role    order.Role
	next    order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status transition command.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	role order.Role,
	next order.Status,
) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := actorID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := next.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		actorID: actorID,
		role:    role,
		next:    next,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being transitioned.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns who requests the transition.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID { return c.actorID }

// Role returns the actor's role.
func (c ChangeOrderStatusCommand) Role() order.Role { return c.role }

// Next returns the requested target status.
func (c ChangeOrderStatusCommand) Next() order.Status { return c.next }

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}
