// Package couponrepo persists coupons and their usage ledger. The
// ledger is append-only; usage counts are always computed from it,
// never cached.
package couponrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CouponDTO is the database representation of a coupon. The seller
// scope is a native postgres text array; an empty array means the
// coupon applies everywhere.
type CouponDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code                string         `gorm:"uniqueIndex;size:64"`
	DiscountType        string         `gorm:"size:16"`
	DiscountValue       float64
	MinOrderAmount      float64
	MaxDiscountAmount   float64
	ApplicableSellerIDs pq.StringArray `gorm:"type:text[]"`
	UsageLimit          int
	ValidFrom           time.Time
	ValidUntil          time.Time
	IsActive            bool
}

// TableName maps the DTO to the "coupons" table.
func (CouponDTO) TableName() string {
	return "coupons"
}

// CouponUsageDTO is one redemption in the ledger. The composite unique
// index rejects a second redemption of the same coupon for the same
// order.
type CouponUsageDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	CouponID       uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_coupon_order"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_coupon_order"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	DiscountAmount float64
	CreatedAt      time.Time
}

// TableName maps the DTO to the "coupon_usages" table.
func (CouponUsageDTO) TableName() string {
	return "coupon_usages"
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	scope := make([]kernel.UUID, 0, len(dto.ApplicableSellerIDs))
	for _, raw := range dto.ApplicableSellerIDs {
		sellerID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		scope = append(scope, sellerID)
	}

	return coupon.RestoreCoupon(
		id, dto.Code, coupon.DiscountType(dto.DiscountType), dto.DiscountValue,
		dto.MinOrderAmount, dto.MaxDiscountAmount, scope, dto.UsageLimit,
		dto.ValidFrom, dto.ValidUntil, dto.IsActive,
	)
}

func usageFromDomain(usage coupon.Usage) CouponUsageDTO {
	return CouponUsageDTO{
		CouponID:       usage.CouponID().Bytes(),
		OrderID:        usage.OrderID().Bytes(),
		UserID:         usage.UserID().Bytes(),
		DiscountAmount: usage.DiscountAmount(),
		CreatedAt:      usage.CreatedAt(),
	}
}
