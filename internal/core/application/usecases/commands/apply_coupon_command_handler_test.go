package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (cart.Coupon, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(cart.Coupon), args.Error(1)
}

func couponCart(t *testing.T, customerID kernel.UUID, subtotal string) *cart.Cart {
	t.Helper()
	now := time.Now()

	c, err := cart.NewCart(kernel.NewUUID(), customerID, now)
	require.NoError(t, err)
	_, err = c.SetRestaurant(kernel.NewUUID(), now)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(kernel.NewUUID(), "Iskender", mustMoney(t, subtotal), 1, now))
	return c
}

func TestApplyCouponCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	customerCart := couponCart(t, customerID, "65.50")

	coupon, err := cart.NewCoupon("INDIRIM20", cart.Percentage, decimal.NewFromInt(20), kernel.ZeroMoney())
	require.NoError(t, err)

	cmd, err := commands.NewApplyCouponCommand(customerID, "INDIRIM20")
	require.NoError(t, err)

	coupons := new(MockCouponRepository)
	cartRepo := new(MockCartRepository)
	uow := new(MockCartUoW)

	mock.InOrder(
		coupons.On("GetByCode", ctx, "INDIRIM20").Return(coupon, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", ctx, customerID).Return(customerCart, nil).Once(),
		cartRepo.On("Update", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	handler := commands.NewApplyCouponCommandHandler(factory, coupons, pricing)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "13.10", result.Breakdown.Discount().String())
	assert.Equal(t, "62.40", result.Breakdown.Total().String())
	require.NotNil(t, customerCart.Coupon())
	assert.Equal(t, "INDIRIM20", customerCart.Coupon().Code())
	coupons.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyCouponCommandHandler_Handle_UnknownCode(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewApplyCouponCommand(customerID, "YOKBOYLE")
	require.NoError(t, err)

	coupons := new(MockCouponRepository)
	coupons.On("GetByCode", ctx, "YOKBOYLE").
		Return(cart.Coupon{}, errs.NewObjectNotFoundError("coupon", "YOKBOYLE")).Once()

	factory := new(MockCartUoWFactory)
	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	handler := commands.NewApplyCouponCommandHandler(factory, coupons, pricing)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestApplyCouponCommandHandler_Handle_BelowMinimumSubtotal(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	customerCart := couponCart(t, customerID, "40.00")

	coupon, err := cart.NewCoupon("TESLIMAT0", cart.FreeDelivery, decimal.Zero, mustMoney(t, "50.00"))
	require.NoError(t, err)

	cmd, err := commands.NewApplyCouponCommand(customerID, "TESLIMAT0")
	require.NoError(t, err)

	coupons := new(MockCouponRepository)
	cartRepo := new(MockCartRepository)
	uow := new(MockCartUoW)

	mock.InOrder(
		coupons.On("GetByCode", ctx, "TESLIMAT0").Return(coupon, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", ctx, customerID).Return(customerCart, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	handler := commands.NewApplyCouponCommandHandler(factory, coupons, pricing)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, cart.ErrCouponIneligible)
	// The cart keeps no coupon and nothing was written.
	assert.Nil(t, customerCart.Coupon())
	cartRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestApplyCouponCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ApplyCouponCommand{} // not constructed properly

	coupons := new(MockCouponRepository)
	factory := new(MockCartUoWFactory)
	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	handler := commands.NewApplyCouponCommandHandler(factory, coupons, pricing)

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrApplyCouponCommandIsNotConstructed)
	coupons.AssertNotCalled(t, "GetByCode")
}
