package cart

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through the NewCart factory method.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

	// ErrItemNotInCart is returned when removing or decrementing an item the
	// cart does not contain.
	ErrItemNotInCart = errors.New("item is not in the cart")
)

// Cart is the aggregate holding one customer's unsubmitted selection.
//
// Invariants:
//   - all items belong to the cart's single restaurant
//   - every line item has quantity >= 1
//   - an applied coupon always satisfies its own minimum subtotal at the
//     moment it was applied
type Cart struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	items        []Item
	coupon       *Coupon
	updatedAt    time.Time

	isConstructed bool
}

// NewCart creates an empty cart for a customer. The restaurant is bound
// lazily by the first SetRestaurant call.
func NewCart(id kernel.UUID, customerID kernel.UUID, now time.Time) (*Cart, error) {
	c := &Cart{
		isConstructed: true,
		updatedAt:     now,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCart rehydrates a cart from persistence without re-running creation
// rules. Items and coupon are trusted to have been validated when first
// stored.
func RestoreCart(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	coupon *Coupon,
	updatedAt time.Time,
) (*Cart, error) {
	c, err := NewCart(id, customerID, updatedAt)
	if err != nil {
		return nil, err
	}

	c.restaurantID = restaurantID
	c.items = items
	c.coupon = coupon
	return c, nil
}

// Validate ensures the Cart instance was properly constructed through NewCart.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// CustomerID returns the owning customer.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant the cart is bound to. The zero UUID
// means no restaurant has been chosen yet.
func (c *Cart) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns a copy of the cart's line items.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Coupon returns the applied coupon, or nil when none is applied.
func (c *Cart) Coupon() *Coupon {
	return c.coupon
}

// UpdatedAt returns the time of the last mutation, used by the abandoned
// cart cleanup job.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Subtotal returns the sum of all line totals.
func (c *Cart) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range c.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// SetRestaurant binds the cart to a restaurant. Switching away from a
// restaurant that already has items clears the items and the coupon; the
// returned flag reports that clearing so callers can warn the customer
// instead of discovering an emptied cart later.
func (c *Cart) SetRestaurant(restaurantID kernel.UUID, now time.Time) (cleared bool, err error) {
	if err = restaurantID.Validate(); err != nil {
		return false, err
	}

	if c.restaurantID.IsEqual(restaurantID) {
		return false, nil
	}

	cleared = len(c.items) > 0
	c.items = nil
	c.coupon = nil
	c.restaurantID = restaurantID
	c.updatedAt = now
	return cleared, nil
}

// AddItem adds delta units of an item. A negative delta decrements; when the
// resulting quantity drops to zero or below the line is removed entirely,
// matching the customer-facing "minus to remove" affordance. Adding a brand
// new line requires a positive delta.
func (c *Cart) AddItem(itemID kernel.UUID, name string, unitPrice kernel.Money, delta int, now time.Time) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	if delta == 0 {
		return errs.NewValueIsInvalidErrorWithCause("delta",
			fmt.Errorf("delta must not be 0"))
	}

	for i, existing := range c.items {
		if !existing.ItemID().IsEqual(itemID) {
			continue
		}

		newQuantity := existing.Quantity() + delta
		if newQuantity < 1 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = now
			return nil
		}

		updated, err := NewItem(itemID, existing.Name(), existing.UnitPrice(), newQuantity)
		if err != nil {
			return err
		}
		c.items[i] = updated
		c.updatedAt = now
		return nil
	}

	if delta < 0 {
		return ErrItemNotInCart
	}

	item, err := NewItem(itemID, name, unitPrice, delta)
	if err != nil {
		return err
	}
	c.items = append(c.items, item)
	c.updatedAt = now
	return nil
}

// RemoveItem removes a line item regardless of its quantity.
func (c *Cart) RemoveItem(itemID kernel.UUID, now time.Time) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	for i, existing := range c.items {
		if existing.ItemID().IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = now
			return nil
		}
	}
	return ErrItemNotInCart
}

// ApplyCoupon applies a coupon to the cart, replacing any previously applied
// one. A coupon whose minimum subtotal exceeds the current subtotal is
// rejected with ErrCouponIneligible and the existing coupon stays in place.
func (c *Cart) ApplyCoupon(coupon Coupon, now time.Time) error {
	if err := coupon.Validate(); err != nil {
		return err
	}

	if c.Subtotal().LessThan(coupon.MinimumSubtotal()) {
		return fmt.Errorf("%w: coupon %s requires %s, cart subtotal is %s",
			ErrCouponIneligible, coupon.Code(), coupon.MinimumSubtotal(), c.Subtotal())
	}

	c.coupon = &coupon
	c.updatedAt = now
	return nil
}

// RemoveCoupon detaches the applied coupon, if any. Used when a later
// mutation shrinks the subtotal below the coupon's minimum.
func (c *Cart) RemoveCoupon(now time.Time) {
	if c.coupon != nil {
		c.coupon = nil
		c.updatedAt = now
	}
}

// Clear empties the cart: items, coupon, and restaurant binding.
func (c *Cart) Clear(now time.Time) {
	c.items = nil
	c.coupon = nil
	c.restaurantID = kernel.UUID{}
	c.updatedAt = now
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}
