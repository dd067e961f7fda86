package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is a single line in a cart: a menu item with its unit price at the
// time it was added, and a quantity of at least one.
type Item struct {
	itemID    kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
}

// NewItem creates a validated cart line.
func NewItem(itemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (Item, error) {
	item := Item{}

	if err := errors.Join(
		item.setItemID(itemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.unitPrice = unitPrice
	return item, nil
}

// ItemID returns the menu item identifier.
func (i Item) ItemID() kernel.UUID {
	return i.itemID
}

// Name returns the display name captured when the item was added.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the per-unit price.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the number of units, always >= 1.
func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal returns unit price multiplied by quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

func (i *Item) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	i.itemID = itemID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	i.quantity = quantity
	return nil
}
