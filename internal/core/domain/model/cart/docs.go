// Package cart implements the customer's in-progress selection: line items
// from a single restaurant plus an optionally applied coupon.
//
// The cart enforces two invariants the checkout flow depends on:
//   - all items belong to one restaurant; switching restaurants clears the
//     cart and reports it to the caller rather than failing silently
//   - a line item's quantity is always at least one; decrementing to zero
//     removes the line entirely
//
// A cart is owned by exactly one customer and is destroyed on successful
// checkout or an explicit clear.
package cart
