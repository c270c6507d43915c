package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CartLine is one client-submitted cart entry. Only the meal reference
// and the quantity are trusted; names and prices are re-read from the
// catalog by the handler.
type CartLine struct {
	MealID   kernel.UUID
	Quantity int
}

// CheckoutCommand turns a validated cart into a priced, persisted
// order. The optional address reference falls back to the buyer's
// default address; the optional coupon code is validated and redeemed
// inside the checkout transaction.
//
// ClientTotal carries the client-side estimate when the frontend sends
// one. A mismatch against the server-computed total is logged, never
// rejected — the server total is authoritative.
type CheckoutCommand struct {
	userID        kernel.UUID
	lines         []CartLine
	addressID     *kernel.UUID
	paymentMethod string
	couponCode    string
	clientTotal   *float64

	guard guard.ConstructorGuard
}

// NewCheckoutCommand validates the request shape: a non-empty cart
// with positive quantities, a payment method, and a valid buyer id.
// Pricing and catalog checks belong to the handler.
func NewCheckoutCommand(
	userID kernel.UUID,
	lines []CartLine,
	addressID *kernel.UUID,
	paymentMethod string,
	couponCode string,
	clientTotal *float64,
) (CheckoutCommand, error) {
	if err := userID.Validate(); err != nil {
		return CheckoutCommand{}, err
	}
	if len(lines) == 0 {
		return CheckoutCommand{}, errs.NewValueIsRequiredError("cart")
	}
	for _, line := range lines {
		if err := line.MealID.Validate(); err != nil {
			return CheckoutCommand{}, err
		}
		if line.Quantity <= 0 {
			return CheckoutCommand{}, errs.NewValueIsInvalidError("quantity")
		}
	}
	if paymentMethod == "" {
		return CheckoutCommand{}, errs.NewValueIsRequiredError("paymentMethod")
	}
	if addressID != nil {
		if err := addressID.Validate(); err != nil {
			return CheckoutCommand{}, err
		}
	}

	return CheckoutCommand{
		userID:        userID,
		lines:         lines,
		addressID:     addressID,
		paymentMethod: paymentMethod,
		couponCode:    couponCode,
		clientTotal:   clientTotal,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// UserID returns the buyer placing the order.
func (c CheckoutCommand) UserID() kernel.UUID { return c.userID }

// Lines returns the cart entries.
func (c CheckoutCommand) Lines() []CartLine { return c.lines }

// AddressID returns the delivery address reference, nil for default.
func (c CheckoutCommand) AddressID() *kernel.UUID { return c.addressID }

// PaymentMethod returns the chosen payment method.
func (c CheckoutCommand) PaymentMethod() string { return c.paymentMethod }

// CouponCode returns the coupon code, empty for none.
func (c CheckoutCommand) CouponCode() string { return c.couponCode }

// ClientTotal returns the client-side estimate, nil when absent.
func (c CheckoutCommand) ClientTotal() *float64 { return c.clientTotal }

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}
