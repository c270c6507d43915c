package commands

import (
	"context"
)

// SetCourierStatusCommandHandler persists courier availability
// toggles.
type SetCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierStatusCommandHandler creates a handler for availability
// toggles.
func NewSetCourierStatusCommandHandler(uowFactory CourierUoWFactory) SetCourierStatusCommandHandler {
	return SetCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the toggle command. Setting the current status
// again is a no-op that still succeeds.
func (h *SetCourierStatusCommandHandler) Handle(ctx context.Context, cmd SetCourierStatusCommand) error {
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

	aggregate, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.SetStatus(cmd.Status()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
