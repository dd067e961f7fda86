package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrItemNameIsRequired = errors.New("item name is required")
	ErrDeltaIsZero        = errors.New("delta must not be 0")
)

// AddCartItemCommand represents a request to change the quantity of one item
// in the customer's cart. A positive delta adds units, a negative one
// removes them; dropping to zero removes the line.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	restaurantID kernel.UUID
	itemID       kernel.UUID
	name         string
	unitPrice    kernel.Money
	delta        int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a validated cart mutation command.
func NewAddCartItemCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	itemID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	delta int,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItemID(itemID),
		cmd.setName(name),
		cmd.setDelta(delta),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	cmd.unitPrice = unitPrice
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant the item belongs to.
func (c AddCartItemCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// ItemID returns the menu item identifier.
func (c AddCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Name returns the item's display name.
func (c AddCartItemCommand) Name() string {
	return c.name
}

// UnitPrice returns the item's current catalog price.
func (c AddCartItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

// Delta returns the signed quantity change.
func (c AddCartItemCommand) Delta() int {
	return c.delta
}

func (c *AddCartItemCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *AddCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *AddCartItemCommand) setName(name string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}
	c.name = name
	return nil
}

func (c *AddCartItemCommand) setDelta(delta int) error {
	if delta == 0 {
		return ErrDeltaIsZero
	}
	c.delta = delta
	return nil
}
