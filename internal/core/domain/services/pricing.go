package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// PricingService computes the price breakdown of a cart. It is a pure
// function of the cart and the configured delivery fee: no side effects,
// no I/O, deterministic.
//
// Discount resolution by coupon kind:
//   - Percentage(v):  discount = subtotal * v/100
//   - FixedAmount(v): discount = min(v, subtotal)
//   - FreeDelivery:   discount = deliveryFee
//
// A coupon whose minimum subtotal exceeds the cart subtotal makes pricing
// fail with cart.ErrCouponIneligible; nothing is clamped.
type PricingService struct {
	deliveryFee kernel.Money
}

// NewPricingService creates a pricing service with the configured flat
// delivery fee. Distance-based fees do not exist in this version; the fee is
// configuration, not a computation.
func NewPricingService(deliveryFee kernel.Money) PricingService {
	return PricingService{deliveryFee: deliveryFee}
}

// DeliveryFee returns the configured flat fee.
func (s PricingService) DeliveryFee() kernel.Money {
	return s.deliveryFee
}

// Price turns the cart into a breakdown: subtotal, delivery fee, discount,
// and a total floored at zero and rounded to two decimals half-up. The cart
// is not mutated.
func (s PricingService) Price(c *cart.Cart) (order.PriceBreakdown, error) {
	if err := c.Validate(); err != nil {
		return order.PriceBreakdown{}, err
	}

	subtotal := c.Subtotal()

	discount, err := s.resolveDiscount(c.Coupon(), subtotal)
	if err != nil {
		return order.PriceBreakdown{}, err
	}

	return order.NewPriceBreakdown(subtotal, s.deliveryFee, discount), nil
}

func (s PricingService) resolveDiscount(coupon *cart.Coupon, subtotal kernel.Money) (kernel.Money, error) {
	if coupon == nil {
		return kernel.ZeroMoney(), nil
	}

	if subtotal.LessThan(coupon.MinimumSubtotal()) {
		return kernel.ZeroMoney(), fmt.Errorf("%w: coupon %s requires %s, cart subtotal is %s",
			cart.ErrCouponIneligible, coupon.Code(), coupon.MinimumSubtotal(), subtotal)
	}

	switch coupon.Kind() {
	case cart.Percentage:
		return subtotal.Percent(coupon.Value()), nil
	case cart.FixedAmount:
		fixed, err := kernel.NewMoney(coupon.Value())
		if err != nil {
			return kernel.ZeroMoney(), err
		}
		return fixed.Min(subtotal), nil
	case cart.FreeDelivery:
		return s.deliveryFee, nil
	default:
		return kernel.ZeroMoney(), coupon.Kind().Validate()
	}
}
