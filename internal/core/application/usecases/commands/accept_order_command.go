package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is the pull side of dispatch: a courier browsed
// the available list and claims a specific order for themselves.
type AcceptOrderCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a pull-dispatch command.
func NewAcceptOrderCommand(orderID, courierID kernel.UUID) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}
	if err := courierID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being claimed.
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the claiming courier.
func (c AcceptOrderCommand) CourierID() kernel.UUID { return c.courierID }

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
