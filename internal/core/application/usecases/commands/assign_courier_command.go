package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand pushes a specific ready order onto an available
// courier chosen by the dispatcher. Used by the seller-triggered
// assignment endpoint and by the background retry job.
type AssignCourierCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a push-dispatch command for the
// given order.
func NewAssignCourierCommand(orderID kernel.UUID) (AssignCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to dispatch.
func (c AssignCourierCommand) OrderID() kernel.UUID { return c.orderID }

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}
