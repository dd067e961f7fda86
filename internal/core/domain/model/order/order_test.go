package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

type orderFixture struct {
	order      *order.Order
	customerID kernel.UUID
	businessID kernel.UUID
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	customerID := kernel.NewUUID()
	businessID := kernel.NewUUID()

	item, err := order.NewItem(kernel.NewUUID(), "Adana Kebab", mustMoney(t, "45.50"), 1)
	require.NoError(t, err)

	snapshot := order.NewPriceBreakdown(mustMoney(t, "45.50"), mustMoney(t, "10.00"), kernel.ZeroMoney())

	o, err := order.NewOrder(kernel.NewUUID(), customerID, businessID,
		[]order.Item{item}, snapshot, "Ataturk Cad. 12, Kadikoy", "card", "ch_123", time.Now())
	require.NoError(t, err)

	return orderFixture{order: o, customerID: customerID, businessID: businessID}
}

// advance walks the order along a path of transitions, claiming it with the
// given courier once the pickup edge is reached.
func advance(t *testing.T, f orderFixture, courierID kernel.UUID, path ...order.Status) {
	t.Helper()
	for _, to := range path {
		var actor kernel.Actor
		switch to {
		case order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup:
			actor = mustActor(t, f.businessID, kernel.RoleBusiness)
		default:
			actor = mustActor(t, courierID, kernel.RoleCourier)
		}
		require.NoError(t, f.order.TransitionTo(to, actor, time.Now()))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in created status with seeded history", func(t *testing.T) {
		f := newOrderFixture(t)

		require.NoError(t, f.order.Validate())
		assert.Equal(t, order.StatusCreated, f.order.Status())
		assert.Nil(t, f.order.CourierID())
		assert.Nil(t, f.order.ConfirmedAt())
		assert.Equal(t, "55.50", f.order.PriceSnapshot().Total().String())

		history := f.order.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusCreated, history[0].Status())
		assert.Equal(t, kernel.RoleCustomer, history[0].Actor().Role())
		assert.True(t, history[0].Actor().ID().IsEqual(f.customerID))
	})

	t.Run("should fail without items", func(t *testing.T) {
		snapshot := order.NewPriceBreakdown(kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney())

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, snapshot, "somewhere", "card", "", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order items")
	})

	t.Run("should fail without delivery address", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Ayran", mustMoney(t, "10.00"), 1)
		require.NoError(t, err)
		snapshot := order.NewPriceBreakdown(mustMoney(t, "10.00"), kernel.ZeroMoney(), kernel.ZeroMoney())

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{item}, snapshot, "", "card", "", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delivery address")
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderTransitionTo(t *testing.T) {
	t.Run("business confirmation binds confirmedAt", func(t *testing.T) {
		f := newOrderFixture(t)
		now := time.Now()

		err := f.order.TransitionTo(order.StatusConfirmed, mustActor(t, f.businessID, kernel.RoleBusiness), now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, f.order.Status())
		require.NotNil(t, f.order.ConfirmedAt())
		assert.Equal(t, now, *f.order.ConfirmedAt())
	})

	t.Run("another business may not confirm", func(t *testing.T) {
		f := newOrderFixture(t)

		err := f.order.TransitionTo(order.StatusConfirmed, mustActor(t, kernel.NewUUID(), kernel.RoleBusiness), time.Now())

		require.ErrorIs(t, err, order.ErrActorForbidden)
		assert.Equal(t, order.StatusCreated, f.order.Status())
	})

	t.Run("customer cancels own created order", func(t *testing.T) {
		f := newOrderFixture(t)

		err := f.order.TransitionTo(order.StatusCancelled, mustActor(t, f.customerID, kernel.RoleCustomer), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, f.order.Status())
	})

	t.Run("another customer may not cancel", func(t *testing.T) {
		f := newOrderFixture(t)

		err := f.order.TransitionTo(order.StatusCancelled, mustActor(t, kernel.NewUUID(), kernel.RoleCustomer), time.Now())

		require.ErrorIs(t, err, order.ErrActorForbidden)
	})

	t.Run("customer cannot cancel once preparing", func(t *testing.T) {
		f := newOrderFixture(t)
		advance(t, f, kernel.NewUUID(), order.StatusConfirmed, order.StatusPreparing)

		err := f.order.TransitionTo(order.StatusCancelled, mustActor(t, f.customerID, kernel.RoleCustomer), time.Now())

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.StatusPreparing, f.order.Status())
	})

	t.Run("pickup claims the order for the courier", func(t *testing.T) {
		f := newOrderFixture(t)
		courierID := kernel.NewUUID()
		advance(t, f, courierID, order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup)

		err := f.order.TransitionTo(order.StatusPickedUp, mustActor(t, courierID, kernel.RoleCourier), time.Now())

		require.NoError(t, err)
		require.NotNil(t, f.order.CourierID())
		assert.True(t, f.order.CourierID().IsEqual(courierID))
	})

	t.Run("second courier claim conflicts instead of overwriting", func(t *testing.T) {
		f := newOrderFixture(t)
		first := kernel.NewUUID()
		advance(t, f, first, order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup, order.StatusPickedUp)

		err := f.order.TransitionTo(order.StatusPickedUp, mustActor(t, kernel.NewUUID(), kernel.RoleCourier), time.Now())

		require.ErrorIs(t, err, order.ErrCourierConflict)
		assert.True(t, f.order.CourierID().IsEqual(first))
	})

	t.Run("claim on an order already out for delivery conflicts", func(t *testing.T) {
		f := newOrderFixture(t)
		first := kernel.NewUUID()
		advance(t, f, first, order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup,
			order.StatusPickedUp, order.StatusDelivering)

		err := f.order.TransitionTo(order.StatusPickedUp, mustActor(t, kernel.NewUUID(), kernel.RoleCourier), time.Now())

		require.ErrorIs(t, err, order.ErrCourierConflict)
		assert.Equal(t, order.StatusDelivering, f.order.Status())
	})

	t.Run("only the claiming courier may deliver", func(t *testing.T) {
		f := newOrderFixture(t)
		courierID := kernel.NewUUID()
		advance(t, f, courierID, order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup, order.StatusPickedUp)

		err := f.order.TransitionTo(order.StatusDelivered, mustActor(t, kernel.NewUUID(), kernel.RoleCourier), time.Now())

		require.ErrorIs(t, err, order.ErrActorForbidden)
	})

	t.Run("delivering is optional on the way to delivered", func(t *testing.T) {
		direct := newOrderFixture(t)
		courierID := kernel.NewUUID()
		advance(t, direct, courierID, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReadyForPickup, order.StatusPickedUp, order.StatusDelivered)
		assert.Equal(t, order.StatusDelivered, direct.order.Status())

		viaMarker := newOrderFixture(t)
		advance(t, viaMarker, courierID, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReadyForPickup, order.StatusPickedUp, order.StatusDelivering, order.StatusDelivered)
		assert.Equal(t, order.StatusDelivered, viaMarker.order.Status())
	})

	t.Run("history grows by one entry per transition in order", func(t *testing.T) {
		f := newOrderFixture(t)
		courierID := kernel.NewUUID()
		advance(t, f, courierID, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReadyForPickup, order.StatusPickedUp, order.StatusDelivered)

		history := f.order.History()
		require.Len(t, history, 6)

		want := []order.Status{
			order.StatusCreated, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReadyForPickup, order.StatusPickedUp, order.StatusDelivered,
		}
		for i, entry := range history {
			assert.Equal(t, want[i], entry.Status())
			if i > 0 {
				assert.False(t, entry.Timestamp().Before(history[i-1].Timestamp()))
			}
		}
	})

	t.Run("no transitions out of a terminal status", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.TransitionTo(order.StatusCancelled,
			mustActor(t, f.customerID, kernel.RoleCustomer), time.Now()))

		err := f.order.TransitionTo(order.StatusConfirmed, mustActor(t, f.businessID, kernel.RoleBusiness), time.Now())

		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should rehydrate a stored order as-is", func(t *testing.T) {
		f := newOrderFixture(t)
		courierID := kernel.NewUUID()
		advance(t, f, courierID, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReadyForPickup, order.StatusPickedUp)

		restored, err := order.RestoreOrder(f.order.ID(), f.order.CustomerID(), f.order.BusinessID(),
			f.order.CourierID(), f.order.Items(), f.order.PriceSnapshot(), f.order.Status(),
			f.order.History(), f.order.DeliveryAddress(), f.order.PaymentMethod(),
			f.order.PaymentRef(), f.order.CreatedAt(), f.order.ConfirmedAt())

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(f.order))
		assert.Equal(t, order.StatusPickedUp, restored.Status())
		assert.True(t, restored.CourierID().IsEqual(courierID))
		assert.Len(t, restored.History(), 5)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := order.RestoreOrder(f.order.ID(), f.order.CustomerID(), f.order.BusinessID(),
			nil, f.order.Items(), f.order.PriceSnapshot(), order.StatusUnknown,
			f.order.History(), f.order.DeliveryAddress(), f.order.PaymentMethod(),
			f.order.PaymentRef(), f.order.CreatedAt(), nil)

		require.Error(t, err)
	})
}
