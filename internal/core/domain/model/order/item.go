package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is an immutable order line, copied from the cart at checkout. Unlike
// cart lines it never changes: the order records what was bought at the
// price it was bought for.
type Item struct {
	itemID    kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
}

// NewItem creates a validated order line.
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

// Name returns the item's display name at purchase time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the per-unit price at purchase time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the number of units.
func (i Item) Quantity() int {
	return i.quantity
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
