package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// PriceBreakdown is the priced view of a cart: subtotal, delivery fee,
// discount, and the resulting total. At checkout it is frozen onto the order
// as the price snapshot; later catalog or coupon changes never alter it.
//
// Invariant: total == max(0, subtotal + deliveryFee - discount), rounded to
// two decimal places half-up.
type PriceBreakdown struct {
	subtotal    kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	total       kernel.Money
}

// NewPriceBreakdown assembles a breakdown from its components, deriving the
// total. The total is floored at zero: a discount can never make an order
// negative. Each component is rounded before the total is derived, so the
// stored components always re-add to the stored total.
func NewPriceBreakdown(subtotal, deliveryFee, discount kernel.Money) PriceBreakdown {
	subtotal = subtotal.Round2()
	deliveryFee = deliveryFee.Round2()
	discount = discount.Round2()
	return PriceBreakdown{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		discount:    discount,
		total:       subtotal.Add(deliveryFee).Sub(discount),
	}
}

// RestorePriceBreakdown rehydrates a stored snapshot, verifying the total
// invariant still holds.
func RestorePriceBreakdown(subtotal, deliveryFee, discount, total kernel.Money) (PriceBreakdown, error) {
	expected := subtotal.Add(deliveryFee).Sub(discount).Round2()
	if !expected.IsEqual(total) {
		return PriceBreakdown{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s does not match %s + %s - %s", total, subtotal, deliveryFee, discount))
	}
	return PriceBreakdown{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		discount:    discount,
		total:       total,
	}, nil
}

// Subtotal returns the sum of line totals.
func (p PriceBreakdown) Subtotal() kernel.Money { return p.subtotal }

// DeliveryFee returns the delivery fee component.
func (p PriceBreakdown) DeliveryFee() kernel.Money { return p.deliveryFee }

// Discount returns the coupon discount component.
func (p PriceBreakdown) Discount() kernel.Money { return p.discount }

// Total returns the amount charged to the customer.
func (p PriceBreakdown) Total() kernel.Money { return p.total }

// IsEqual compares all four components.
func (p PriceBreakdown) IsEqual(other PriceBreakdown) bool {
	return p.subtotal.IsEqual(other.subtotal) &&
		p.deliveryFee.IsEqual(other.deliveryFee) &&
		p.discount.IsEqual(other.discount) &&
		p.total.IsEqual(other.total)
}
