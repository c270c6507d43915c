package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
)

// RegisterCourierCommandHandler persists newly enrolled couriers.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewRegisterCourierCommandHandler creates a handler for courier
// registration.
func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
func (h *RegisterCourierCommandHandler) Handle(ctx context.Context, cmd RegisterCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := courier.NewCourier(cmd.CourierID(), cmd.Name())
	if err != nil {
		return err
	}

	if err = uow.CourierRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
