package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// A customer has at most one cart at a time.
type CartRepository interface {
	// Add persists a new cart aggregate.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update replaces the stored items and coupon of an existing cart.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// GetByCustomer retrieves the customer's cart.
	// Returns errs.ObjectNotFoundError when the customer has none.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Delete removes the cart, used on successful checkout and by the
	// abandoned-cart cleanup job.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteIdleSince removes carts untouched since the given cutoff and
	// returns how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// CouponRepository resolves coupon codes against the coupon catalog.
// Campaign administration is out of scope; the catalog is read-only here.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its public code.
	// Returns errs.ObjectNotFoundError for unknown codes.
	GetByCode(ctx context.Context, code string) (cart.Coupon, error)
}
