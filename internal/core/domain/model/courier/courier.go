// Package courier contains the Courier entity and the delivery Task
// aggregate. A Task is the courier-side record of one claimed order:
// it is created exactly once per order, in the same transaction as the
// claim, and then advances through its own sub-lifecycle.
package courier

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Status is the courier's availability for dispatch.
type Status string

const (
	// StatusOnline makes the courier eligible for push dispatch and
	// lets them see the pull listing.
	StatusOnline Status = "online"
	// StatusOffline removes the courier from dispatch entirely.
	StatusOffline Status = "offline"
)

// StatusFromString parses a courier availability value.
func StatusFromString(s string) (Status, error) {
	switch Status(s) {
	case StatusOnline, StatusOffline:
		return Status(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid courier status", s))
}

// ErrCourierIsNotConstructed is returned when a Courier instance was
// not created through NewCourier or RestoreCourier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

// Courier is a delivery worker. Availability is the only state the
// engine owns; profile data lives elsewhere. A courier already holding
// an on_delivery order is excluded from push dispatch even while
// online; that exclusion is a storage-side query, not a field here,
// so it can never go stale.
type Courier struct {
	id     kernel.UUID
	name   string
	status Status

	guard guard.ConstructorGuard
}

// NewCourier registers a courier, initially offline.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	return RestoreCourier(id, name, StatusOffline)
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(id kernel.UUID, name string, status Status) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if status != StatusOnline && status != StatusOffline {
		return nil, errs.NewValueIsInvalidError("status")
	}

	return &Courier{
		id:     id,
		name:   name,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Courier was built through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Status returns the courier's availability.
func (c *Courier) Status() Status { return c.status }

// IsOnline reports whether the courier is available for dispatch.
func (c *Courier) IsOnline() bool { return c.status == StatusOnline }

// SetStatus toggles the courier's availability.
func (c *Courier) SetStatus(status Status) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if status != StatusOnline && status != StatusOffline {
		return errs.NewValueIsInvalidError("status")
	}
	c.status = status
	return nil
}
