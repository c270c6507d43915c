package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ReasonUnknownCode is returned when the submitted code matches no
// coupon at all. The endpoint is advisory, so an unknown code is a
// rejection reason, not an error.
const ReasonUnknownCode = "coupon code is not recognized"

// ValidateCouponQueryHandler runs the coupon decision against the
// current ledger state. The same domain logic runs again at checkout,
// so a coupon that validates here can still be rejected minutes later
// if its usage limit fills up in between.
type ValidateCouponQueryHandler struct {
	db *gorm.DB
}

// NewValidateCouponQueryHandler creates a handler for advisory coupon
// validation.
func NewValidateCouponQueryHandler(db *gorm.DB) ValidateCouponQueryHandler {
	return ValidateCouponQueryHandler{db: db}
}

// Handle executes the validation query.
func (h ValidateCouponQueryHandler) Handle(
	ctx context.Context,
	query ValidateCouponQuery,
) (ValidateCouponQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateCouponQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.discount_type,
			c.discount_value,
			c.min_order_amount,
			c.max_discount_amount,
			c.applicable_seller_ids,
			c.usage_limit,
			c.valid_from,
			c.valid_until,
			c.is_active,
			(SELECT COUNT(*) FROM coupon_usages u WHERE u.coupon_id = c.id)
		FROM coupons c
		WHERE c.code = ?
	`, query.Code()).Row()

	var (
		id            string
		discountType  string
		discountValue float64
		minOrder      float64
		maxDiscount   float64
		sellerIDs     pq.StringArray
		usageLimit    int
		validFrom     time.Time
		validUntil    time.Time
		isActive      bool
		usageCount    int
	)
	err := row.Scan(
		&id, &discountType, &discountValue, &minOrder, &maxDiscount,
		&sellerIDs, &usageLimit, &validFrom, &validUntil, &isActive,
		&usageCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ValidateCouponQueryResponse{Reason: ReasonUnknownCode}, nil
	}
	if err != nil {
		return ValidateCouponQueryResponse{}, err
	}

	couponID, err := kernel.UUIDFromString(id)
	if err != nil {
		return ValidateCouponQueryResponse{}, err
	}
	scope := make([]kernel.UUID, 0, len(sellerIDs))
	for _, raw := range sellerIDs {
		sellerID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return ValidateCouponQueryResponse{}, idErr
		}
		scope = append(scope, sellerID)
	}

	restored, err := coupon.RestoreCoupon(
		couponID, query.Code(), coupon.DiscountType(discountType), discountValue,
		minOrder, maxDiscount, scope, usageLimit,
		validFrom, validUntil, isActive,
	)
	if err != nil {
		return ValidateCouponQueryResponse{}, err
	}

	decision := restored.Decide(query.Subtotal(), query.SellerID(), usageCount, time.Now().UTC())
	return ValidateCouponQueryResponse{
		Valid:          decision.Accepted,
		DiscountAmount: decision.DiscountAmount,
		Reason:         decision.Reason,
	}, nil
}
