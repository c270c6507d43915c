package coupon

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Usage is one redemption of a coupon on one order. The (orderID,
// couponID) pair is unique, enforced by a storage constraint, so a
// coupon can never be redeemed twice for the same order. Usage counts
// are always computed by counting these rows, never by maintaining a
// separate counter.
type Usage struct {
	couponID       kernel.UUID
	orderID        kernel.UUID
	userID         kernel.UUID
	discountAmount float64
	createdAt      time.Time
}

// NewUsage records a successful redemption.
func NewUsage(couponID, orderID, userID kernel.UUID, discountAmount float64, now time.Time) (Usage, error) {
	for _, id := range []kernel.UUID{couponID, orderID, userID} {
		if err := id.Validate(); err != nil {
			return Usage{}, err
		}
	}

	return Usage{
		couponID:       couponID,
		orderID:        orderID,
		userID:         userID,
		discountAmount: discountAmount,
		createdAt:      now,
	}, nil
}

// CouponID returns the redeemed coupon.
func (u Usage) CouponID() kernel.UUID { return u.couponID }

// OrderID returns the order the coupon was applied to.
func (u Usage) OrderID() kernel.UUID { return u.orderID }

// UserID returns the redeeming buyer.
func (u Usage) UserID() kernel.UUID { return u.userID }

// DiscountAmount returns the discount granted by this redemption.
func (u Usage) DiscountAmount() float64 { return u.discountAmount }

// CreatedAt returns the redemption timestamp.
func (u Usage) CreatedAt() time.Time { return u.createdAt }
