package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrValidateCouponQueryIsNotConstructed = errors.New(
	"ValidateCouponQuery must be created via NewValidateCouponQuery constructor",
)

// ValidateCouponQuery checks a coupon against a cart before checkout.
// It is purely advisory: nothing is reserved, and checkout re-runs the
// same decision inside its transaction.
type ValidateCouponQuery struct {
	code     string
	sellerID kernel.UUID
	subtotal float64

	guard guard.ConstructorGuard
}

// NewValidateCouponQuery creates a coupon validation query.
func NewValidateCouponQuery(code string, sellerID kernel.UUID, subtotal float64) (ValidateCouponQuery, error) {
	if code == "" {
		return ValidateCouponQuery{}, errs.NewValueIsRequiredError("code")
	}
	if err := sellerID.Validate(); err != nil {
		return ValidateCouponQuery{}, err
	}
	if subtotal < 0 {
		return ValidateCouponQuery{}, errs.NewValueIsInvalidError("subtotal")
	}

	return ValidateCouponQuery{
		code:     code,
		sellerID: sellerID,
		subtotal: subtotal,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Code returns the coupon code under test.
func (q ValidateCouponQuery) Code() string { return q.code }

// SellerID returns the seller the cart belongs to.
func (q ValidateCouponQuery) SellerID() kernel.UUID { return q.sellerID }

// Subtotal returns the cart subtotal the discount is computed from.
func (q ValidateCouponQuery) Subtotal() float64 { return q.subtotal }

// Validate ensures the query was created through the constructor.
func (q ValidateCouponQuery) Validate() error {
	return q.guard.Validate(ErrValidateCouponQueryIsNotConstructed)
}

// ValidateCouponQueryResponse is the advisory verdict. A rejection
// carries the human-readable reason; an acceptance the discount the
// cart would get right now.
type ValidateCouponQueryResponse struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	Reason         string  `json:"reason,omitempty"`
}
