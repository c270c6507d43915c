package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// AcceptOrderCommandHandler lets a courier claim an order off the
// available list. It shares the claim path with push dispatch, so two
// couriers tapping accept at the same moment resolve the same way two
// dispatchers would: exactly one wins.
type AcceptOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for courier-initiated
// claims. A nil logger falls back to the default.
func NewAcceptOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the accept command. Returns ErrOrderAlreadyAssigned
// when the order was claimed between listing and accepting.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	claimant, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !claimant.IsOnline() {
		return errs.NewConflictError("courier must be online to accept orders")
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if _, err = claimOrder(ctx, uow, aggregate, claimant.ID(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}
