package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand enrolls a new courier. Couriers start
// offline and toggle themselves online when ready for work.
type RegisterCourierCommand struct {
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a registration command.
func NewRegisterCourierCommand(courierID kernel.UUID, name string) (RegisterCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return RegisterCourierCommand{}, err
	}
	if name == "" {
		return RegisterCourierCommand{}, errs.NewValueIsRequiredError("name")
	}

	return RegisterCourierCommand{
		courierID: courierID,
		name:      name,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CourierID returns the identity of the new courier.
func (c RegisterCourierCommand) CourierID() kernel.UUID { return c.courierID }

// Name returns the courier's display name.
func (c RegisterCourierCommand) Name() string { return c.name }

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}
