package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCouponIneligible is returned when a coupon's minimum subtotal exceeds
// the cart's current subtotal. The coupon is rejected outright, never
// silently clamped, and the cart's previously applied coupon (if any) is
// left untouched.
var ErrCouponIneligible = errors.New("cart subtotal is below the coupon minimum")

// CouponKind selects how a coupon's discount is computed.
type CouponKind int

const (
	// CouponKindUnknown represents an invalid or undefined kind.
	CouponKindUnknown CouponKind = iota

	// Percentage discounts the subtotal by Value percent.
	Percentage

	// FixedAmount discounts a fixed Value, capped at the subtotal.
	FixedAmount

	// FreeDelivery discounts exactly the delivery fee; Value is ignored.
	FreeDelivery
)

func getCouponKindStrings() map[CouponKind]string {
	return map[CouponKind]string{
		CouponKindUnknown: "unknown",
		Percentage:        "percentage",
		FixedAmount:       "fixed_amount",
		FreeDelivery:      "free_delivery",
	}
}

// CouponKindFromString parses a kind name as stored in the coupon catalog.
func CouponKindFromString(s string) (CouponKind, error) {
	for kind, name := range getCouponKindStrings() {
		if kind != CouponKindUnknown && name == s {
			return kind, nil
		}
	}
	return CouponKindUnknown, errs.NewValueIsInvalidErrorWithCause("coupon kind",
		fmt.Errorf("%q is not a valid coupon kind", s))
}

// String returns the catalog name of the kind.
func (k CouponKind) String() string {
	if s, ok := getCouponKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects CouponKindUnknown and out-of-range values.
func (k CouponKind) Validate() error {
	if _, ok := getCouponKindStrings()[k]; !ok || k == CouponKindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("coupon kind",
			fmt.Errorf("%d is not a valid coupon kind", k))
	}
	return nil
}

// Coupon is an immutable discount rule resolved from the coupon catalog.
// Applying a coupon to a cart is idempotent: re-application replaces the
// prior coupon rather than stacking.
type Coupon struct {
	code            string
	kind            CouponKind
	value           decimal.Decimal
	minimumSubtotal kernel.Money
}

// NewCoupon creates a validated coupon. Value is a percentage for Percentage
// coupons and a monetary amount for FixedAmount; FreeDelivery ignores it.
func NewCoupon(code string, kind CouponKind, value decimal.Decimal, minimumSubtotal kernel.Money) (Coupon, error) {
	if code == "" {
		return Coupon{}, errs.NewValueIsRequiredError("coupon code")
	}
	if err := kind.Validate(); err != nil {
		return Coupon{}, err
	}
	if value.IsNegative() {
		return Coupon{}, errs.NewValueIsInvalidErrorWithCause("coupon value",
			fmt.Errorf("%s is negative", value))
	}

	return Coupon{
		code:            code,
		kind:            kind,
		value:           value,
		minimumSubtotal: minimumSubtotal,
	}, nil
}

// Code returns the public coupon code.
func (c Coupon) Code() string {
	return c.code
}

// Kind returns the discount computation kind.
func (c Coupon) Kind() CouponKind {
	return c.kind
}

// Value returns the percentage or fixed amount, depending on Kind.
func (c Coupon) Value() decimal.Decimal {
	return c.value
}

// MinimumSubtotal returns the smallest cart subtotal the coupon applies to.
func (c Coupon) MinimumSubtotal() kernel.Money {
	return c.minimumSubtotal
}

// Validate ensures the coupon was created through NewCoupon.
func (c Coupon) Validate() error {
	if c.code == "" {
		return errs.NewValueIsRequiredError("coupon must be created via NewCoupon")
	}
	return c.kind.Validate()
}
