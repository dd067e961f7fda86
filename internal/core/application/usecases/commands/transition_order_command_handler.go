package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ErrCourierBusy is returned when a courier tries to claim an order while
// already carrying an active delivery and the multi-delivery policy flag is
// off.
var ErrCourierBusy = errors.New("courier already has an active delivery")

// TransitionOrderCommandHandler is the transition authority: the single
// write path for order status changes.
//
// Every call re-reads the order and validates the requested edge against the
// current status at that instant, so a stale dashboard issuing a transition
// against an already-moved order is rejected rather than applied blindly.
// The final write is a conditional update keyed on the previous status:
// when a courier's pick-up and a business's cancel race, exactly one commits
// and the other receives order.ErrStatusConflict. The authority never
// guesses intent or auto-resolves a race; the losing actor refreshes and
// retries by hand.
type TransitionOrderCommandHandler struct {
	uowFactory         OrderUoWFactory
	publisher          ports.OrderEventPublisher
	allowMultiDelivery bool
	logger             *slog.Logger
}

// NewTransitionOrderCommandHandler creates the transition authority.
// allowMultiDelivery relaxes the one-active-delivery-per-courier rule.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	allowMultiDelivery bool,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:         uowFactory,
		publisher:          publisher,
		allowMultiDelivery: allowMultiDelivery,
		logger:             logger.With("component", "transition_handler"),
	}
}

// Handle processes the transition and returns the order in its new state.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.checkCourierLoad(ctx, orderRepo, aggregate, cmd); err != nil {
		return nil, err
	}

	expectedStatus := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.ToStatus(), cmd.Actor(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateWithStatusCheck(ctx, aggregate, expectedStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishOrderChanged(ctx, aggregate, cmd.Actor().Role(), now)

	return aggregate, nil
}

// checkCourierLoad enforces the single-delivery policy on the claim edge:
// a courier with an active delivery may not claim another order unless the
// policy flag allows concurrent deliveries.
func (h TransitionOrderCommandHandler) checkCourierLoad(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	aggregate *order.Order,
	cmd TransitionOrderCommand,
) error {
	if h.allowMultiDelivery ||
		cmd.ToStatus() != order.StatusPickedUp ||
		cmd.Actor().Role() != kernel.RoleCourier ||
		aggregate.CourierID() != nil {
		return nil
	}

	active, err := orderRepo.CountActiveForCourier(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrCourierBusy
	}
	return nil
}

func (h TransitionOrderCommandHandler) publishOrderChanged(
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
