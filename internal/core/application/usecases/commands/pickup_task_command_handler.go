package commands

import (
	"context"
	"time"
)

// PickupTaskCommandHandler marks a task picked up. Only the task row
// changes; the order stays in on_delivery throughout.
type PickupTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewPickupTaskCommandHandler creates a handler for pickup reports.
func NewPickupTaskCommandHandler(uowFactory TaskUoWFactory) PickupTaskCommandHandler {
	return PickupTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command. Ownership and the
// assigned-to-picked_up transition are enforced by the task aggregate.
func (h *PickupTaskCommandHandler) Handle(ctx context.Context, cmd PickupTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	task, err := uow.TaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.MarkPickedUp(cmd.CourierID(), now); err != nil {
		return err
	}

	if err = uow.TaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
