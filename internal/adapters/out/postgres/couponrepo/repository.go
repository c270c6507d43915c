package couponrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCouponRepository implements ports.CouponRepository using GORM.
// Coupon definitions are managed elsewhere; this repository only reads
// them and appends to the usage ledger.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// GetByCode retrieves a coupon by its unique code. Inside a transaction the
// coupon row is locked until commit, so concurrent redemptions serialize and
// the usage count read afterwards stays exact.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountUsages counts ledger entries for a coupon.
func (r *GormCouponRepository) CountUsages(ctx context.Context, couponID kernel.UUID) (int, error) {
	if err := couponID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&CouponUsageDTO{}).
		Where("coupon_id = ?", couponID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// AddUsage appends one redemption to the ledger.
func (r *GormCouponRepository) AddUsage(ctx context.Context, usage coupon.Usage) error {
	dto := usageFromDomain(usage)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("coupon already redeemed for this order", err)
		}
		return err
	}

	return nil
}
