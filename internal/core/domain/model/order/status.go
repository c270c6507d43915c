package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a
// state machine with a fixed set of legal transitions so orders always
// follow the business workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> on_delivery ──> delivered
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──> cancelled
//
// No other edges exist. In particular an order can never reach
// delivered without passing through on_delivery, and nothing leaves
// delivered or cancelled.
type Status string

const (
	// StatusPending is the initial status written at checkout.
	StatusPending Status = "pending"

	// StatusConfirmed means the seller has accepted the order.
	StatusConfirmed Status = "confirmed"

	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing Status = "preparing"

	// StatusReady means preparation is finished and the order awaits
	// courier pickup. Entering this status makes the order claimable.
	StatusReady Status = "ready"

	// StatusOnDelivery means exactly one courier has claimed the order.
	StatusOnDelivery Status = "on_delivery"

	// StatusDelivered is the successful final status.
	StatusDelivered Status = "delivered"

	// StatusCancelled is the unsuccessful final status. Reachable from
	// any pre-delivery status except on_delivery.
	StatusCancelled Status = "cancelled"
)

// legalEdges enumerates every allowed transition. Absence means the
// edge is illegal.
var legalEdges = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusOnDelivery, StatusCancelled},
	StatusOnDelivery: {
		StatusDelivered,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

// StatusFromString parses a status received from a client or read back
// from persistence. Returns a validation error for unknown values.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := legalEdges[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether the order is still in flight. Active orders
// appear in the buyer's "active" listing; final ones in "past".
func (s Status) IsActive() bool {
	return !s.IsFinal()
}

// CanTransitionTo reports whether the edge s -> next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalEdges[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the edge is legal, or a ConflictError
// naming the disallowed edge. Illegal transitions are business
// conflicts, never generic failures.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(next) {
		return "", errs.NewConflictError(
			fmt.Sprintf("status transition %s -> %s is not allowed", s, next))
	}

	return next, nil
}
