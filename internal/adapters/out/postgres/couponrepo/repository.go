// Package couponrepo provides read-only access to the coupon catalog.
// Campaign administration lives elsewhere; this repository only resolves
// codes presented by customers.
package couponrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponDTO represents the database structure for coupon catalog entries.
type CouponDTO struct {
	Code            string `gorm:"type:varchar(64);primaryKey"`
	Kind            string `gorm:"type:varchar(32)"`
	Value           decimal.Decimal
	MinimumSubtotal decimal.Decimal
}

// TableName specifies the database table name for coupon entities.
func (CouponDTO) TableName() string {
	return "coupons"
}

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// GetByCode retrieves a coupon by its public code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (cart.Coupon, error) {
	if code == "" {
		return cart.Coupon{}, errs.NewValueIsRequiredError("coupon code")
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.Coupon{}, errs.NewObjectNotFoundError("coupon", code)
		}
		return cart.Coupon{}, err
	}

	return toDomain(dto)
}

func toDomain(dto CouponDTO) (cart.Coupon, error) {
	kind, err := cart.CouponKindFromString(dto.Kind)
	if err != nil {
		return cart.Coupon{}, err
	}
	minimum, err := kernel.NewMoney(dto.MinimumSubtotal)
	if err != nil {
		return cart.Coupon{}, err
	}
	return cart.NewCoupon(dto.Code, kind, dto.Value, minimum)
}
