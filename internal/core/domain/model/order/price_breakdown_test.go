package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceBreakdown(t *testing.T) {
	t.Run("derives the total from the components", func(t *testing.T) {
		b := order.NewPriceBreakdown(mustMoney(t, "65.50"), mustMoney(t, "10.00"), mustMoney(t, "13.10"))

		assert.Equal(t, "65.50", b.Subtotal().String())
		assert.Equal(t, "10.00", b.DeliveryFee().String())
		assert.Equal(t, "13.10", b.Discount().String())
		assert.Equal(t, "62.40", b.Total().String())
	})

	t.Run("floors the total at zero", func(t *testing.T) {
		b := order.NewPriceBreakdown(mustMoney(t, "10.00"), kernel.ZeroMoney(), mustMoney(t, "500.00"))

		assert.True(t, b.Total().IsZero())
	})

	t.Run("rounds the total half-up", func(t *testing.T) {
		b := order.NewPriceBreakdown(mustMoney(t, "10.005"), kernel.ZeroMoney(), kernel.ZeroMoney())

		assert.Equal(t, "10.01", b.Total().String())
	})

	t.Run("half-cent discount survives rehydration from its own components", func(t *testing.T) {
		// 10% of 32.25 is 3.225; the stored discount must re-add to the
		// stored total.
		b := order.NewPriceBreakdown(mustMoney(t, "32.25"), mustMoney(t, "10.00"), mustMoney(t, "3.225"))

		assert.Equal(t, "3.23", b.Discount().String())
		assert.Equal(t, "39.02", b.Total().String())

		restored, err := order.RestorePriceBreakdown(b.Subtotal(), b.DeliveryFee(), b.Discount(), b.Total())
		require.NoError(t, err)
		assert.True(t, restored.IsEqual(b))
	})
}

func TestRestorePriceBreakdown(t *testing.T) {
	t.Run("accepts a consistent snapshot", func(t *testing.T) {
		b, err := order.RestorePriceBreakdown(
			mustMoney(t, "65.50"), mustMoney(t, "10.00"), mustMoney(t, "13.10"), mustMoney(t, "62.40"))

		require.NoError(t, err)
		assert.Equal(t, "62.40", b.Total().String())
	})

	t.Run("rejects a total that does not match its components", func(t *testing.T) {
		_, err := order.RestorePriceBreakdown(
			mustMoney(t, "65.50"), mustMoney(t, "10.00"), mustMoney(t, "13.10"), mustMoney(t, "75.50"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is invalid: total")
	})
}

func TestPriceBreakdownIsEqual(t *testing.T) {
	a := order.NewPriceBreakdown(mustMoney(t, "65.50"), mustMoney(t, "10.00"), kernel.ZeroMoney())
	b := order.NewPriceBreakdown(mustMoney(t, "65.50"), mustMoney(t, "10.00"), kernel.ZeroMoney())
	c := order.NewPriceBreakdown(mustMoney(t, "65.50"), mustMoney(t, "10.00"), mustMoney(t, "5.00"))

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
