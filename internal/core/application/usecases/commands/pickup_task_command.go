package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrPickupTaskCommandIsNotConstructed = errors.New(
	"PickupTaskCommand must be created via NewPickupTaskCommand constructor",
)

// PickupTaskCommand records that the assigned courier collected the
// order from the seller.
type PickupTaskCommand struct {
	taskID    kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickupTaskCommand creates a pickup command.
func NewPickupTaskCommand(taskID, courierID kernel.UUID) (PickupTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return PickupTaskCommand{}, err
	}
	if err := courierID.Validate(); err != nil {
		return PickupTaskCommand{}, err
	}

	return PickupTaskCommand{
		taskID:    taskID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task being picked up.
func (c PickupTaskCommand) TaskID() kernel.UUID { return c.taskID }

// CourierID returns the courier reporting the pickup.
func (c PickupTaskCommand) CourierID() kernel.UUID { return c.courierID }

// Validate ensures the command was created through the constructor.
func (c PickupTaskCommand) Validate() error {
	return c.guard.Validate(ErrPickupTaskCommandIsNotConstructed)
}
