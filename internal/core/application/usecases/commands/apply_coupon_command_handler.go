package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ApplyCouponCommandHandler resolves a coupon code against the catalog and
// applies it to the customer's cart.
//
// The pricing engine runs inside the same operation, so the summary the
// caller receives is always consistent with the coupon just applied. On
// rejection (minimum subtotal not met, unknown code) the cart's applied
// coupon is left unchanged and the specific failure reason propagates:
// cart.ErrCouponIneligible or errs.ObjectNotFoundError.
type ApplyCouponCommandHandler struct {
	uowFactory CartUoWFactory
	coupons    ports.CouponRepository
	pricing    services.PricingService
}

// NewApplyCouponCommandHandler creates a handler for coupon application.
func NewApplyCouponCommandHandler(
	uowFactory CartUoWFactory,
	coupons ports.CouponRepository,
	pricing services.PricingService,
) ApplyCouponCommandHandler {
	return ApplyCouponCommandHandler{
		uowFactory: uowFactory,
		coupons:    coupons,
		pricing:    pricing,
	}
}

// Handle processes the coupon application. Re-application replaces the prior
// coupon; coupons never stack.
func (h ApplyCouponCommandHandler) Handle(ctx context.Context, cmd ApplyCouponCommand) (CartSummaryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CartSummaryResult{}, err
	}

	coupon, err := h.coupons.GetByCode(ctx, cmd.Code())
	if err != nil {
		return CartSummaryResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CartSummaryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	customerCart, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return CartSummaryResult{}, err
	}

	if err = customerCart.ApplyCoupon(coupon, now); err != nil {
		return CartSummaryResult{}, err
	}

	breakdown, err := h.pricing.Price(customerCart)
	if err != nil {
		return CartSummaryResult{}, err
	}

	if err = cartRepo.Update(ctx, customerCart); err != nil {
		return CartSummaryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CartSummaryResult{}, err
	}

	return CartSummaryResult{Breakdown: breakdown}, nil
}
