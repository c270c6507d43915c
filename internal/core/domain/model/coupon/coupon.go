// Package coupon contains the Coupon record and the pure decision
// function that accepts or rejects a coupon for a given subtotal,
// seller and usage count. The decision never touches storage: the
// caller supplies the actual usage count, always re-counted from the
// CouponUsage ledger, never from a cached field.
package coupon

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// DiscountType distinguishes flat-amount coupons from percentage ones.
type DiscountType string

const (
	// DiscountFixed subtracts the discount value directly.
	DiscountFixed DiscountType = "fixed"
	// DiscountPercentage subtracts a percentage of the subtotal,
	// optionally capped by the coupon's max discount amount.
	DiscountPercentage DiscountType = "percentage"
)

// Validate checks the DiscountType is a known value.
func (d DiscountType) Validate() error {
	if d != DiscountFixed && d != DiscountPercentage {
		return errs.NewValueIsInvalidErrorWithCause("discountType",
			fmt.Errorf("%q is not a valid discount type", string(d)))
	}
	return nil
}

// Rejection reasons returned by Decide. Each failed check produces a
// distinct reason so the client can tell the user what went wrong.
const (
	ReasonNotActive    = "coupon is not active"
	ReasonNotYetValid  = "coupon is not yet valid"
	ReasonExpired      = "coupon has expired"
	ReasonWrongSeller  = "coupon is not valid for this seller"
	ReasonLimitReached = "coupon usage limit reached"
)

// ErrCouponIsNotConstructed is returned when a Coupon instance was not
// created through RestoreCoupon.
var ErrCouponIsNotConstructed = errors.New("Coupon must be created via RestoreCoupon")

// Coupon is a discount definition maintained outside the engine and
// read here to make checkout and validation decisions.
//
// Interpretation of the optional fields:
//   - maxDiscountAmount 0 means an uncapped percentage discount
//   - an empty applicableSellerIDs list means globally valid
//   - usageLimit <= 0 means unlimited redemptions
type Coupon struct {
	id                  kernel.UUID
	code                string
	discountType        DiscountType
	discountValue       float64
	minOrderAmount      float64
	maxDiscountAmount   float64
	applicableSellerIDs []kernel.UUID
	usageLimit          int
	validFrom           time.Time
	validUntil          time.Time
	isActive            bool

	guard guard.ConstructorGuard
}

// RestoreCoupon reconstructs a coupon from persistence.
func RestoreCoupon(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	discountValue float64,
	minOrderAmount float64,
	maxDiscountAmount float64,
	applicableSellerIDs []kernel.UUID,
	usageLimit int,
	validFrom time.Time,
	validUntil time.Time,
	isActive bool,
) (*Coupon, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if err := discountType.Validate(); err != nil {
		return nil, err
	}
	if discountValue < 0 {
		return nil, errs.NewValueIsInvalidError("discountValue")
	}

	return &Coupon{
		id:                  id,
		code:                code,
		discountType:        discountType,
		discountValue:       discountValue,
		minOrderAmount:      minOrderAmount,
		maxDiscountAmount:   maxDiscountAmount,
		applicableSellerIDs: applicableSellerIDs,
		usageLimit:          usageLimit,
		validFrom:           validFrom,
		validUntil:          validUntil,
		isActive:            isActive,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Coupon was built through RestoreCoupon.
func (c *Coupon) Validate() error {
	if c == nil {
		return ErrCouponIsNotConstructed
	}
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

// ID returns the coupon identifier.
func (c *Coupon) ID() kernel.UUID { return c.id }

// Code returns the unique coupon code.
func (c *Coupon) Code() string { return c.code }

// UsageLimit returns the redemption limit; <= 0 means unlimited.
func (c *Coupon) UsageLimit() int { return c.usageLimit }

// Decision is the outcome of validating a coupon against an order.
// A rejected decision carries a human-readable reason and a zero
// discount; an accepted one carries the computed discount.
type Decision struct {
	Accepted       bool
	DiscountAmount float64
	Reason         string
}

func rejected(reason string) Decision {
	return Decision{Reason: reason}
}

// Decide applies every coupon check in a fixed order, each with its own
// rejection reason:
//
//  1. the coupon is active
//  2. now is within [validFrom, validUntil]
//  3. the subtotal meets the minimum order amount (the reason names
//     the threshold)
//  4. the coupon applies to this seller (empty scope means any seller)
//  5. the usage limit is not yet reached, judged by the usage count
//     the caller read from the ledger
//
// On acceptance the discount is computed from the discount type,
// percentage discounts capped by maxDiscountAmount when set, and the
// final amount clamped to the subtotal and rounded half-up to cents.
func (c *Coupon) Decide(subtotal float64, sellerID kernel.UUID, usageCount int, now time.Time) Decision {
	if !c.isActive {
		return rejected(ReasonNotActive)
	}
	if now.Before(c.validFrom) {
		return rejected(ReasonNotYetValid)
	}
	if now.After(c.validUntil) {
		return rejected(ReasonExpired)
	}
	if subtotal < c.minOrderAmount {
		return rejected(fmt.Sprintf("order subtotal must be at least %.2f to use this coupon", c.minOrderAmount))
	}
	if !c.appliesToSeller(sellerID) {
		return rejected(ReasonWrongSeller)
	}
	if c.usageLimit > 0 && usageCount >= c.usageLimit {
		return rejected(ReasonLimitReached)
	}

	return Decision{
		Accepted:       true,
		DiscountAmount: c.discountFor(subtotal),
	}
}

func (c *Coupon) appliesToSeller(sellerID kernel.UUID) bool {
	if len(c.applicableSellerIDs) == 0 {
		return true
	}
	for _, id := range c.applicableSellerIDs {
		if id.IsEqual(sellerID) {
			return true
		}
	}
	return false
}

func (c *Coupon) discountFor(subtotal float64) float64 {
	var discount float64
	switch c.discountType {
	case DiscountPercentage:
		discount = subtotal * c.discountValue / 100
		if c.maxDiscountAmount > 0 && discount > c.maxDiscountAmount {
			discount = c.maxDiscountAmount
		}
	case DiscountFixed:
		discount = c.discountValue
	}

	if discount > subtotal {
		discount = subtotal
	}
	return kernel.RoundMoney(discount)
}
