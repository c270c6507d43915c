package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCompleteTaskCommandIsNotConstructed = errors.New(
	"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
)

// CompleteTaskCommand closes out a delivery: the task flips to
// delivered with its payout fixed, and the order flips to delivered in
// the same transaction. The optional adjusted payout lets operations
// correct the estimate at completion time.
type CompleteTaskCommand struct {
	taskID         kernel.UUID
	courierID      kernel.UUID
	adjustedPayout *float64

	guard guard.ConstructorGuard
}

// NewCompleteTaskCommand creates a completion command. A negative
// adjusted payout is rejected here; a nil one means the estimate
// stands.
func NewCompleteTaskCommand(taskID, courierID kernel.UUID, adjustedPayout *float64) (CompleteTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return CompleteTaskCommand{}, err
	}
	if err := courierID.Validate(); err != nil {
		return CompleteTaskCommand{}, err
	}
	if adjustedPayout != nil && *adjustedPayout < 0 {
		return CompleteTaskCommand{}, errs.NewValueIsInvalidError("adjustedPayout")
	}

	return CompleteTaskCommand{
		taskID:         taskID,
		courierID:      courierID,
		adjustedPayout: adjustedPayout,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task being completed.
func (c CompleteTaskCommand) TaskID() kernel.UUID { return c.taskID }

// CourierID returns the courier reporting the delivery.
func (c CompleteTaskCommand) CourierID() kernel.UUID { return c.courierID }

// AdjustedPayout returns the payout correction, nil for none.
func (c CompleteTaskCommand) AdjustedPayout() *float64 { return c.adjustedPayout }

// Validate ensures the command was created through the constructor.
func (c CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}
