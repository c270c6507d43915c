package courier

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// DefaultEstimatedPayout is used when the seller record carries no
// delivery fee to derive the payout from.
const DefaultEstimatedPayout = 10.00

// TaskStatus is the sub-lifecycle of a delivery task:
//
//	assigned ──> picked_up ──> delivered
//	    │            │
//	    └────────────┴──> cancelled
type TaskStatus string

const (
	TaskAssigned  TaskStatus = "assigned"
	TaskPickedUp  TaskStatus = "picked_up"
	TaskDelivered TaskStatus = "delivered"
	TaskCancelled TaskStatus = "cancelled"
)

// Validate checks the TaskStatus is a known value.
func (s TaskStatus) Validate() error {
	switch s {
	case TaskAssigned, TaskPickedUp, TaskDelivered, TaskCancelled:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("taskStatus",
		fmt.Errorf("%q is not a valid task status", string(s)))
}

// ErrTaskIsNotConstructed is returned when a Task instance was not
// created through NewTask or RestoreTask.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask")

// Task is the courier-side record of one claimed order. At most one
// task exists per order, enforced by a uniqueness constraint on the
// order id in storage rather than by application logic alone.
//
// Pickup and delivery locations are text snapshots frozen at claim
// time; later address or seller edits do not reach historical tasks.
// Earnings are always computed by aggregating delivered tasks for a
// period at query time — there is no running total to drift.
type Task struct {
	id               kernel.UUID
	orderID          kernel.UUID
	courierID        kernel.UUID
	pickupLocation   string
	deliveryLocation string
	estimatedPayout  float64
	status           TaskStatus
	pickedUpAt       *time.Time
	deliveredAt      *time.Time
	actualPayout     *float64
	createdAt        time.Time
	updatedAt        time.Time

	guard guard.ConstructorGuard
}

// NewTask creates the task for a freshly claimed order. Must be
// persisted in the same transaction as the claim itself.
func NewTask(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickupLocation string,
	deliveryLocation string,
	estimatedPayout float64,
	now time.Time,
) (*Task, error) {
	t := &Task{
		status: TaskAssigned,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setCourierID(courierID),
		t.setLocations(pickupLocation, deliveryLocation),
		t.setEstimatedPayout(estimatedPayout),
	); err != nil {
		return nil, err
	}

	t.createdAt = now
	t.updatedAt = now
	return t, nil
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickupLocation string,
	deliveryLocation string,
	estimatedPayout float64,
	status TaskStatus,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	actualPayout *float64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Task, error) {
	t := &Task{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setCourierID(courierID),
		t.setLocations(pickupLocation, deliveryLocation),
		t.setEstimatedPayout(estimatedPayout),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	t.status = status
	t.pickedUpAt = pickedUpAt
	t.deliveredAt = deliveredAt
	t.actualPayout = actualPayout
	t.createdAt = createdAt
	t.updatedAt = updatedAt
	return t, nil
}

// Validate ensures the Task was built through a constructor.
func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

// ID returns the task identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// OrderID returns the claimed order.
func (t *Task) OrderID() kernel.UUID { return t.orderID }

// CourierID returns the courier who won the claim.
func (t *Task) CourierID() kernel.UUID { return t.courierID }

// PickupLocation returns the seller address snapshot.
func (t *Task) PickupLocation() string { return t.pickupLocation }

// DeliveryLocation returns the buyer address snapshot.
func (t *Task) DeliveryLocation() string { return t.deliveryLocation }

// EstimatedPayout returns the payout derived from the seller's
// delivery fee at claim time.
func (t *Task) EstimatedPayout() float64 { return t.estimatedPayout }

// Status returns the current sub-lifecycle status.
func (t *Task) Status() TaskStatus { return t.status }

// PickedUpAt returns the pickup timestamp, nil before pickup.
func (t *Task) PickedUpAt() *time.Time { return t.pickedUpAt }

// DeliveredAt returns the delivery timestamp, nil before completion.
func (t *Task) DeliveredAt() *time.Time { return t.deliveredAt }

// ActualPayout returns the final payout, nil before completion.
func (t *Task) ActualPayout() *float64 { return t.actualPayout }

// CreatedAt returns the claim timestamp.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

// MarkPickedUp records that the owning courier collected the order
// from the seller. Only the courier holding the task may do this, and
// only once, from the assigned status.
func (t *Task) MarkPickedUp(courierID kernel.UUID, now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.courierID.IsEqual(courierID) {
		return errs.NewNotAuthorizedError("task belongs to another courier")
	}
	if t.status != TaskAssigned {
		return errs.NewConflictError(
			fmt.Sprintf("task cannot be picked up from status %s", t.status))
	}

	t.status = TaskPickedUp
	t.pickedUpAt = &now
	t.updatedAt = now
	return nil
}

// Complete records the delivery. Only the owning courier may complete,
// only from picked_up. The actual payout defaults to the estimate when
// no adjustment is supplied.
func (t *Task) Complete(courierID kernel.UUID, adjustedPayout *float64, now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.courierID.IsEqual(courierID) {
		return errs.NewNotAuthorizedError("task belongs to another courier")
	}
	if t.status != TaskPickedUp {
		return errs.NewConflictError(
			fmt.Sprintf("task cannot be completed from status %s", t.status))
	}

	payout := t.estimatedPayout
	if adjustedPayout != nil {
		if *adjustedPayout < 0 {
			return errs.NewValueIsInvalidError("actualPayout")
		}
		payout = kernel.RoundMoney(*adjustedPayout)
	}

	t.status = TaskDelivered
	t.deliveredAt = &now
	t.actualPayout = &payout
	t.updatedAt = now
	return nil
}

// Cancel voids a task that has not been delivered.
func (t *Task) Cancel(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status == TaskDelivered || t.status == TaskCancelled {
		return errs.NewConflictError(
			fmt.Sprintf("task cannot be cancelled from status %s", t.status))
	}

	t.status = TaskCancelled
	t.updatedAt = now
	return nil
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *Task) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	t.courierID = courierID
	return nil
}

func (t *Task) setLocations(pickup, delivery string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickupLocation")
	}
	if delivery == "" {
		return errs.NewValueIsRequiredError("deliveryLocation")
	}
	t.pickupLocation = pickup
	t.deliveryLocation = delivery
	return nil
}

func (t *Task) setEstimatedPayout(estimatedPayout float64) error {
	if estimatedPayout < 0 {
		return errs.NewValueIsInvalidError("estimatedPayout")
	}
	t.estimatedPayout = kernel.RoundMoney(estimatedPayout)
	return nil
}
