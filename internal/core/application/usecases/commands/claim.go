package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// ErrOrderAlreadyAssigned signals that another courier won the order
// between listing and claiming. Callers treat it as a normal race
// outcome, not a failure of the system.
var ErrOrderAlreadyAssigned = errors.New("order is already assigned to a courier")

// claimedWindow bounds how far back dispatch looks for unassigned
// ready orders. Older orders need manual intervention, not another
// automatic claim attempt.
const claimedWindow = 2 * time.Hour

// claimOrder performs the assignment inside an already-open dispatch
// unit of work. The decisive step is the conditional update in
// OrderRepository.Claim: whoever moves the row from unassigned to
// assigned first wins, everyone else gets ErrOrderAlreadyAssigned. The
// task row is created in the same transaction, so a claimed order can
// never exist without its task.
func claimOrder(
	ctx context.Context,
	uow DispatchUoW,
	aggregate *order.Order,
	courierID kernel.UUID,
	now time.Time,
) (*courier.Task, error) {
	if !aggregate.IsClaimable() {
		return nil, ErrOrderAlreadyAssigned
	}

	won, err := uow.OrderRepository().Claim(ctx, aggregate.ID(), courierID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrOrderAlreadyAssigned
	}

	if err = aggregate.RestoreClaim(courierID, now); err != nil {
		return nil, err
	}

	seller, err := uow.SellerCatalog().Get(ctx, aggregate.SellerID())
	if err != nil {
		return nil, err
	}
	address, err := uow.AddressBook().Get(ctx, aggregate.AddressID())
	if err != nil {
		return nil, err
	}

	payout := courier.DefaultEstimatedPayout
	if seller.DeliveryFee != nil {
		payout = *seller.DeliveryFee
	}

	task, err := courier.NewTask(
		kernel.NewUUID(),
		aggregate.ID(),
		courierID,
		seller.Address,
		address.Text,
		payout,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.TaskRepository().Add(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}
