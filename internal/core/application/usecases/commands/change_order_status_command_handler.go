package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// OrderDispatcher triggers courier assignment for one order. Satisfied
// by AssignCourierCommandHandler; pulled behind an interface so the
// status handler stays testable without the whole dispatch stack.
type OrderDispatcher interface {
	Dispatch(ctx context.Context, orderID kernel.UUID) error
}

// ChangeOrderStatusCommandHandler applies a lifecycle transition after
// the aggregate has checked both the transition graph and the actor's
// rights. When the order lands in ready status, dispatch is kicked off
// right after commit so the order does not sit waiting for the
// background retry sweep.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher OrderDispatcher
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status
// transitions. The dispatcher may be nil, in which case ready orders
// wait for a courier to pull them or for the retry job.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher OrderDispatcher,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the transition command. Illegal transitions and
// rights violations come back as conflict and authorization errors
// from the aggregate, untouched.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	if err = aggregate.ChangeStatusBy(cmd.Role(), cmd.ActorID(), cmd.Next(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	h.dispatchIfReady(ctx, aggregate)

	return nil
}

// dispatchIfReady pushes a freshly ready order at the dispatcher. No
// courier being online is an expected outcome here; the retry job
// picks the order up later.
func (h *ChangeOrderStatusCommandHandler) dispatchIfReady(ctx context.Context, aggregate *order.Order) {
	if h.dispatcher == nil || !aggregate.IsClaimable() {
		return
	}

	err := h.dispatcher.Dispatch(ctx, aggregate.ID())
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoCourierAvailable), errors.Is(err, ErrOrderAlreadyAssigned):
		h.logger.Info("immediate dispatch skipped",
			"order_number", aggregate.OrderNumber(),
			"reason", err,
		)
	default:
		h.logger.Error("immediate dispatch failed",
			"order_number", aggregate.OrderNumber(),
			"error", err,
		)
	}
}
