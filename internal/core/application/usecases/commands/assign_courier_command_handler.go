package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// AssignCourierCommandHandler implements push dispatch: pick one of
// the available couriers at random and claim the order for them. The
// claim itself is the single conditional update in the order
// repository, so two concurrent dispatch attempts can never both
// succeed.
type AssignCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
	selector   services.CourierSelector
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for push dispatch.
// A nil logger falls back to the default.
func NewAssignCourierCommandHandler(
	uowFactory DispatchUoWFactory,
	selector services.CourierSelector,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		selector:   selector,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the dispatch command. Returns
// services.ErrNoCourierAvailable when nobody is online and
// ErrOrderAlreadyAssigned when another actor claimed the order first.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	candidates, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	chosen, err := h.selector.Select(candidates)
	if err != nil {
		return err
	}

	if _, err = claimOrder(ctx, uow, aggregate, chosen.ID(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}

// Dispatch is a convenience wrapper used by the status transition
// handler and the retry job. It builds the command and delegates to
// Handle.
func (h *AssignCourierCommandHandler) Dispatch(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := NewAssignCourierCommand(orderID)
	if err != nil {
		return err
	}
	return h.Handle(ctx, cmd)
}
