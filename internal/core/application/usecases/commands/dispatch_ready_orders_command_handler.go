package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/services"
)

// DispatchReadyOrdersCommandHandler is the retry sweep behind the
// background job: it lists orders that became ready but never got a
// courier and pushes each one through normal dispatch. Every claim
// still goes through the conditional update, so the sweep can run
// concurrently with live traffic.
type DispatchReadyOrdersCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher OrderDispatcher
	logger     *slog.Logger
}

// NewDispatchReadyOrdersCommandHandler creates the retry sweep
// handler. A nil logger falls back to the default.
func NewDispatchReadyOrdersCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher OrderDispatcher,
	logger *slog.Logger,
) DispatchReadyOrdersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return DispatchReadyOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle runs one sweep. Orders that cannot be dispatched right now
// (no courier online, lost race) stay ready for the next run; only
// unexpected errors are logged at error level. The sweep itself never
// fails the caller over a single order.
func (h *DispatchReadyOrdersCommandHandler) Handle(ctx context.Context) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetReadyUnassigned(ctx, now.Add(-claimedWindow))
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range orders {
		err := h.dispatcher.Dispatch(ctx, aggregate.ID())
		switch {
		case err == nil:
			h.logger.Info("dispatched waiting order",
				"order_number", aggregate.OrderNumber(),
			)
		case errors.Is(err, services.ErrNoCourierAvailable):
			// Nobody online; later orders will fail the same way.
			return nil
		case errors.Is(err, ErrOrderAlreadyAssigned):
		default:
			h.logger.Error("failed to dispatch waiting order",
				"order_number", aggregate.OrderNumber(),
				"error", err,
			)
		}
	}

	return nil
}
