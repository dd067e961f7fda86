package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// CartSummaryResult is returned by cart mutations so the caller always sees
// the freshly priced state along with any visible side effects.
type CartSummaryResult struct {
	// Breakdown is the cart's current price breakdown.
	Breakdown order.PriceBreakdown

	// CartCleared reports that switching restaurants emptied the cart.
	// The clearing is deliberate (single-vendor invariant) but must be
	// surfaced, never silent.
	CartCleared bool

	// CouponRemoved reports that the mutation shrank the subtotal below the
	// applied coupon's minimum, so the coupon was dropped.
	CouponRemoved bool
}

// AddCartItemCommandHandler loads or creates the customer's cart, applies a
// quantity change, and re-prices.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	pricing    services.PricingService
}

// NewAddCartItemCommandHandler creates a handler for cart item mutations.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, pricing services.PricingService) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the cart mutation. A cart is created lazily on the
// customer's first item. Binding the cart to a different restaurant clears
// it first and reports that via CartCleared.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (CartSummaryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CartSummaryResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CartSummaryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	customerCart, isNew, err := loadOrCreateCart(ctx, cartRepo, cmd.CustomerID(), now)
	if err != nil {
		return CartSummaryResult{}, err
	}

	cleared, err := customerCart.SetRestaurant(cmd.RestaurantID(), now)
	if err != nil {
		return CartSummaryResult{}, err
	}

	if err = customerCart.AddItem(cmd.ItemID(), cmd.Name(), cmd.UnitPrice(), cmd.Delta(), now); err != nil {
		return CartSummaryResult{}, err
	}

	breakdown, couponRemoved, err := h.priceDroppingStaleCoupon(customerCart, now)
	if err != nil {
		return CartSummaryResult{}, err
	}

	if isNew {
		err = cartRepo.Add(ctx, customerCart)
	} else {
		err = cartRepo.Update(ctx, customerCart)
	}
	if err != nil {
		return CartSummaryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CartSummaryResult{}, err
	}

	return CartSummaryResult{
		Breakdown:     breakdown,
		CartCleared:   cleared,
		CouponRemoved: couponRemoved,
	}, nil
}

// priceDroppingStaleCoupon prices the cart; if a previously valid coupon no
// longer meets its minimum after the mutation, the coupon is dropped and the
// cart re-priced, with the removal reported to the caller.
func (h AddCartItemCommandHandler) priceDroppingStaleCoupon(
	c *cart.Cart, now time.Time,
) (order.PriceBreakdown, bool, error) {
	breakdown, err := h.pricing.Price(c)
	if err == nil {
		return breakdown, false, nil
	}
	if !errors.Is(err, cart.ErrCouponIneligible) {
		return order.PriceBreakdown{}, false, err
	}

	c.RemoveCoupon(now)
	breakdown, err = h.pricing.Price(c)
	if err != nil {
		return order.PriceBreakdown{}, false, err
	}
	return breakdown, true, nil
}

// loadOrCreateCart fetches the customer's cart or creates a fresh one when
// none exists yet.
func loadOrCreateCart(
	ctx context.Context,
	repo interface {
		GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)
	},
	customerID kernel.UUID,
	now time.Time,
) (*cart.Cart, bool, error) {
	existing, err := repo.GetByCustomer(ctx, customerID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	fresh, err := cart.NewCart(kernel.NewUUID(), customerID, now)
	if err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}
