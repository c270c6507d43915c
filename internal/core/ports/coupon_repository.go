package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CouponRepository defines the persistence contract for coupons and
// their usage ledger.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its unique code. Implementations
	// must lock the coupon row for the duration of the enclosing
	// transaction so that CountUsages plus AddUsage form an atomic
	// redemption.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// CountUsages counts redemptions from the usage ledger. The count
	// is always taken fresh — there is no cached usage counter
	// anywhere in the system.
	CountUsages(ctx context.Context, couponID kernel.UUID) (int, error)

	// AddUsage records one redemption. The (order, coupon) uniqueness
	// constraint rejects a second redemption for the same order.
	AddUsage(ctx context.Context, usage coupon.Usage) error
}
