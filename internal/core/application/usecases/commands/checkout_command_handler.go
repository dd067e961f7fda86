package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ErrCartIsEmpty is returned when checkout is attempted on an empty or
// missing cart.
var ErrCartIsEmpty = errors.New("cart is empty")

// CheckoutResult reports the outcome of a successful checkout.
type CheckoutResult struct {
	OrderID    kernel.UUID
	Breakdown  order.PriceBreakdown
	PaymentRef string
}

// CheckoutCommandHandler prices the cart, charges the customer through the
// payment gateway, and creates the order with a frozen price snapshot.
//
// Ordering matters: payment runs before the database transaction opens, and
// a declined charge aborts checkout with ports.ErrPaymentFailed while the
// cart stays intact for a retry with another method. Only a successful
// charge produces a persisted order; the cart is destroyed in the same
// transaction that creates it.
type CheckoutCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingService
	payments   ports.PaymentGateway
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	uowFactory UoWFactory,
	pricing services.PricingService,
	payments ports.PaymentGateway,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		payments:   payments,
		publisher:  publisher,
		logger:     logger.With("component", "checkout_handler"),
	}
}

// Handle processes the checkout command.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	uow := h.uowFactory.Create()
	cartRepo := uow.CartRepository()

	customerCart, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return CheckoutResult{}, err
	}
	if customerCart.IsEmpty() {
		return CheckoutResult{}, ErrCartIsEmpty
	}

	breakdown, err := h.pricing.Price(customerCart)
	if err != nil {
		return CheckoutResult{}, err
	}

	orderID := kernel.NewUUID()

	payment, err := h.payments.Process(ctx, orderID, cmd.PaymentMethod(), breakdown.Total())
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("processing payment for order %s: %w", orderID, err)
	}

	now := time.Now().UTC()

	items, err := orderItemsFromCart(customerCart)
	if err != nil {
		return CheckoutResult{}, err
	}

	newOrder, err := order.NewOrder(
		orderID,
		cmd.CustomerID(),
		customerCart.RestaurantID(),
		items,
		breakdown,
		cmd.DeliveryAddress(),
		cmd.PaymentMethod(),
		payment.Reference,
		now,
	)
	if err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return CheckoutResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.CartRepository().Delete(ctx, customerCart.ID()); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}

	h.publishOrderChanged(ctx, newOrder, kernel.RoleCustomer, now)

	return CheckoutResult{
		OrderID:    orderID,
		Breakdown:  breakdown,
		PaymentRef: payment.Reference,
	}, nil
}

// publishOrderChanged emits the lifecycle event after commit. Best effort:
// a broker outage must not fail a checkout that already happened.
func (h CheckoutCommandHandler) publishOrderChanged(
	ctx context.Context, o *order.Order, actorRole kernel.Role, occurredAt time.Time,
) {
	event := ports.OrderChangedEvent{
		OrderID:    o.ID().String(),
		CustomerID: o.CustomerID().String(),
		BusinessID: o.BusinessID().String(),
		Status:     o.Status().String(),
		ActorRole:  actorRole.String(),
		Total:      o.PriceSnapshot().Total().String(),
		OccurredAt: occurredAt,
	}
	if courierID := o.CourierID(); courierID != nil {
		event.CourierID = courierID.String()
	}

	if err := h.publisher.PublishOrderChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish order changed event",
			"order_id", event.OrderID, "status", event.Status, "error", err)
	}
}

func orderItemsFromCart(c *cart.Cart) ([]order.Item, error) {
	cartItems := c.Items()
	items := make([]order.Item, 0, len(cartItems))
	for _, ci := range cartItems {
		oi, err := order.NewItem(ci.ItemID(), ci.Name(), ci.UnitPrice(), ci.Quantity())
		if err != nil {
			return nil, err
		}
		items = append(items, oi)
	}
	return items, nil
}
