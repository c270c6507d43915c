package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/ports"
)

// CompleteTaskCommandHandler finishes a delivery. The task and the
// order are updated together; a crash between the two writes can
// never leave a delivered task pointing at an undelivered order.
type CompleteTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCompleteTaskCommandHandler creates a handler for delivery
// completion. A nil logger falls back to the default.
func NewCompleteTaskCommandHandler(
	uowFactory TaskUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompleteTaskCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CompleteTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the completion command. Ownership, the
// picked_up-to-delivered transition and the payout default are all
// enforced by the task aggregate; the order transition by the order
// aggregate.
func (h *CompleteTaskCommandHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
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

	if err = task.Complete(cmd.CourierID(), cmd.AdjustedPayout(), now); err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, task.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkDelivered(cmd.CourierID(), now); err != nil {
		return err
	}

	if err = uow.TaskRepository().Update(ctx, task); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}
