package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

// kebabCart builds the reference cart: one Adana Kebab at 45.50 and two
// Ayran at 10.00, subtotal 65.50.
func kebabCart(t *testing.T) *cart.Cart {
	t.Helper()
	now := time.Now()

	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), now)
	require.NoError(t, err)
	_, err = c.SetRestaurant(kernel.NewUUID(), now)
	require.NoError(t, err)

	require.NoError(t, c.AddItem(kernel.NewUUID(), "Adana Kebab", mustMoney(t, "45.50"), 1, now))
	require.NoError(t, c.AddItem(kernel.NewUUID(), "Ayran", mustMoney(t, "10.00"), 2, now))
	return c
}

func TestPricingWithoutCoupon(t *testing.T) {
	pricing := services.NewPricingService(mustMoney(t, "10.00"))

	breakdown, err := pricing.Price(kebabCart(t))

	require.NoError(t, err)
	assert.Equal(t, "65.50", breakdown.Subtotal().String())
	assert.Equal(t, "10.00", breakdown.DeliveryFee().String())
	assert.True(t, breakdown.Discount().IsZero())
	assert.Equal(t, "75.50", breakdown.Total().String())
}

func TestPricingWithPercentageCoupon(t *testing.T) {
	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	now := time.Now()

	c := kebabCart(t)
	coupon, err := cart.NewCoupon("INDIRIM20", cart.Percentage, decimal.NewFromInt(20), kernel.ZeroMoney())
	require.NoError(t, err)
	require.NoError(t, c.ApplyCoupon(coupon, now))

	breakdown, err := pricing.Price(c)

	require.NoError(t, err)
	assert.Equal(t, "65.50", breakdown.Subtotal().String())
	assert.Equal(t, "13.10", breakdown.Discount().String())
	assert.Equal(t, "62.40", breakdown.Total().String())
}

func TestPricingWithFreeDeliveryCoupon(t *testing.T) {
	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	now := time.Now()

	c := kebabCart(t)
	coupon, err := cart.NewCoupon("TESLIMAT0", cart.FreeDelivery, decimal.Zero, mustMoney(t, "50.00"))
	require.NoError(t, err)
	require.NoError(t, c.ApplyCoupon(coupon, now))

	breakdown, err := pricing.Price(c)

	require.NoError(t, err)
	assert.Equal(t, "10.00", breakdown.Discount().String())
	assert.Equal(t, "65.50", breakdown.Total().String())
}

func TestPricingWithFixedAmountCoupon(t *testing.T) {
	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	now := time.Now()

	t.Run("discounts the fixed amount", func(t *testing.T) {
		c := kebabCart(t)
		coupon, err := cart.NewCoupon("SABIT15", cart.FixedAmount, decimal.NewFromInt(15), kernel.ZeroMoney())
		require.NoError(t, err)
		require.NoError(t, c.ApplyCoupon(coupon, now))

		breakdown, err := pricing.Price(c)

		require.NoError(t, err)
		assert.Equal(t, "15.00", breakdown.Discount().String())
		assert.Equal(t, "60.50", breakdown.Total().String())
	})

	t.Run("caps the discount at the subtotal", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)
		_, err = c.SetRestaurant(kernel.NewUUID(), now)
		require.NoError(t, err)
		require.NoError(t, c.AddItem(kernel.NewUUID(), "Ayran", mustMoney(t, "10.00"), 1, now))

		coupon, err := cart.NewCoupon("DEV500", cart.FixedAmount, decimal.NewFromInt(500), kernel.ZeroMoney())
		require.NoError(t, err)
		require.NoError(t, c.ApplyCoupon(coupon, now))

		breakdown, err := pricing.Price(c)

		require.NoError(t, err)
		assert.Equal(t, "10.00", breakdown.Discount().String())
		assert.Equal(t, "10.00", breakdown.Total().String())
	})
}

func TestPricingRejectsIneligibleCoupon(t *testing.T) {
	pricing := services.NewPricingService(mustMoney(t, "10.00"))
	now := time.Now()

	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), now)
	require.NoError(t, err)
	_, err = c.SetRestaurant(kernel.NewUUID(), now)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(kernel.NewUUID(), "Ayran", mustMoney(t, "10.00"), 4, now))

	// The cart accepted the coupon at a higher subtotal; lines were removed
	// since, so pricing re-checks eligibility at checkout time.
	coupon, err := cart.NewCoupon("TESLIMAT0", cart.FreeDelivery, decimal.Zero, mustMoney(t, "50.00"))
	require.NoError(t, err)
	restored, err := cart.RestoreCart(c.ID(), c.CustomerID(), c.RestaurantID(), c.Items(), &coupon, now)
	require.NoError(t, err)

	_, err = pricing.Price(restored)

	require.ErrorIs(t, err, cart.ErrCouponIneligible)
}
