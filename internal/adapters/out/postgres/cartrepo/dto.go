// Package cartrepo provides data transfer objects and mapping functions for cart persistence.
// This package implements the repository pattern for the cart domain aggregate, handling
// the conversion between domain entities and database representations.
package cartrepo

import (
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO represents the database structure for persisting cart aggregates.
// A customer has at most one cart, enforced by the unique index. The applied
// coupon is denormalized onto the cart row as nullable columns; a NULL coupon
// code means no coupon is applied.
type CartDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`

	CouponCode    *string `gorm:"type:varchar(64)"`
	CouponKind    *string `gorm:"type:varchar(32)"`
	CouponValue   *decimal.Decimal
	CouponMinimum *decimal.Decimal

	UpdatedAt time.Time `gorm:"index"`

	Items []CartItemDTO `gorm:"foreignKey:CartID"`
}

// TableName specifies the database table name for cart entities.
// Overrides GORM's default naming convention to use "carts".
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents one line item within a cart.
type CartItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CartID    uuid.UUID `gorm:"type:uuid;index"`
	ItemID    uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// TableName specifies the database table name for cart line entities.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart domain aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	var restaurantID *uuid.UUID
	if aggregate.RestaurantID().Validate() == nil {
		raw := aggregate.RestaurantID().Bytes()
		restaurantID = &raw
	}

	dto := CartDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: restaurantID,
		UpdatedAt:    aggregate.UpdatedAt(),
	}

	if coupon := aggregate.Coupon(); coupon != nil {
		code := coupon.Code()
		kind := coupon.Kind().String()
		value := coupon.Value()
		minimum := coupon.MinimumSubtotal().Decimal()
		dto.CouponCode = &code
		dto.CouponKind = &kind
		dto.CouponValue = &value
		dto.CouponMinimum = &minimum
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, CartItemDTO{
			CartID:    aggregate.ID().Bytes(),
			ItemID:    item.ItemID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	return dto
}

// toDomain converts a database DTO to a cart domain aggregate using
// RestoreCart.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID kernel.UUID
	if dto.RestaurantID != nil {
		restaurantID, err = kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if err != nil {
			return nil, err
		}
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	coupon, err := couponToDomain(dto)
	if err != nil {
		return nil, err
	}

	return cart.RestoreCart(id, customerID, restaurantID, items, coupon, dto.UpdatedAt)
}

func itemToDomain(dto CartItemDTO) (cart.Item, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return cart.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return cart.Item{}, err
	}
	return cart.NewItem(itemID, dto.Name, unitPrice, dto.Quantity)
}

func couponToDomain(dto CartDTO) (*cart.Coupon, error) {
	if dto.CouponCode == nil {
		return nil, nil
	}

	kind, err := cart.CouponKindFromString(*dto.CouponKind)
	if err != nil {
		return nil, err
	}
	minimum, err := kernel.NewMoney(*dto.CouponMinimum)
	if err != nil {
		return nil, err
	}
	coupon, err := cart.NewCoupon(*dto.CouponCode, kind, *dto.CouponValue, minimum)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
