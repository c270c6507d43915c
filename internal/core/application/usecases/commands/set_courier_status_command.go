package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSetCourierStatusCommandIsNotConstructed = errors.New(
	"SetCourierStatusCommand must be created via NewSetCourierStatusCommand constructor",
)

// SetCourierStatusCommand toggles a courier between online and
// offline. Going offline does not cancel in-flight tasks; it only
// removes the courier from future dispatch.
type SetCourierStatusCommand struct {
	courierID kernel.UUID
	status    courier.Status

	guard guard.ConstructorGuard
}

// NewSetCourierStatusCommand creates an availability toggle command.
func NewSetCourierStatusCommand(courierID kernel.UUID, status courier.Status) (SetCourierStatusCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierStatusCommand{}, err
	}
	if _, err := courier.StatusFromString(string(status)); err != nil {
		return SetCourierStatusCommand{}, err
	}

	return SetCourierStatusCommand{
		courierID: courierID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CourierID returns the courier being toggled.
func (c SetCourierStatusCommand) CourierID() kernel.UUID { return c.courierID }

// Status returns the target availability.
func (c SetCourierStatusCommand) Status() courier.Status { return c.status }

// Validate ensures the command was created through the constructor.
func (c SetCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierStatusCommandIsNotConstructed)
}
