package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request by an actor to move an order
// to a new status: a business confirming, a courier claiming, a customer
// cancelling. All dashboard action buttons funnel into this one command.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	toStatus order.Status
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated transition command.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	toStatus order.Status,
	actor kernel.Actor,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setToStatus(toStatus),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ToStatus returns the requested target status.
func (c TransitionOrderCommand) ToStatus() order.Status {
	return c.toStatus
}

// Actor returns who is requesting the transition.
func (c TransitionOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setToStatus(toStatus order.Status) error {
	if err := toStatus.Validate(); err != nil {
		return err
	}
	c.toStatus = toStatus
	return nil
}

func (c *TransitionOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
