// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column stores the wire name of the status so the conditional
// status update and the dashboard queries share one representation. Price
// snapshot components are numeric columns; the invariant between them is
// re-verified on load.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	BusinessID      uuid.UUID  `gorm:"type:uuid;index"`
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(32);index"`
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	DeliveryAddress string
	PaymentMethod   string
	PaymentRef      string
	CreatedAt       time.Time
	ConfirmedAt     *time.Time

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one frozen order line.
type OrderItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ItemID    uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO represents one entry of the append-only status history.
type HistoryEntryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:varchar(32)"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorRole  string    `gorm:"type:varchar(16)"`
	OccurredAt time.Time
}

// TableName specifies the database table name for status history entities.
func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation,
// including its order lines and full status history.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	snapshot := aggregate.PriceSnapshot()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ItemID:    item.ItemID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	history := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, historyEntryFromDomain(aggregate.ID(), entry))
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		BusinessID:      aggregate.BusinessID().Bytes(),
		CourierID:       courierID,
		Status:          aggregate.Status().String(),
		Subtotal:        snapshot.Subtotal().Decimal(),
		DeliveryFee:     snapshot.DeliveryFee().Decimal(),
		Discount:        snapshot.Discount().Decimal(),
		Total:           snapshot.Total().Decimal(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		PaymentMethod:   aggregate.PaymentMethod(),
		PaymentRef:      aggregate.PaymentRef(),
		CreatedAt:       aggregate.CreatedAt(),
		ConfirmedAt:     aggregate.ConfirmedAt(),
		Items:           items,
		History:         history,
	}
}

func historyEntryFromDomain(orderID kernel.UUID, entry order.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		OrderID:    orderID.Bytes(),
		Status:     entry.Status().String(),
		ActorID:    entry.Actor().ID().Bytes(),
		ActorRole:  entry.Actor().Role().String(),
		OccurredAt: entry.Timestamp(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, price snapshot, and
// status history using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	snapshot, err := snapshotToDomain(dto)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, businessID, courierID,
		items, snapshot, status, history,
		dto.DeliveryAddress, dto.PaymentMethod, dto.PaymentRef,
		dto.CreatedAt, dto.ConfirmedAt)
}

func snapshotToDomain(dto OrderDTO) (order.PriceBreakdown, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.PriceBreakdown{}, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return order.PriceBreakdown{}, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return order.PriceBreakdown{}, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.PriceBreakdown{}, err
	}
	return order.RestorePriceBreakdown(subtotal, deliveryFee, discount, total)
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
		if err != nil {
			return nil, err
		}
		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(itemID, dto.Name, unitPrice, dto.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func historyToDomain(dtos []HistoryEntryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
		if err != nil {
			return nil, err
		}
		role, err := kernel.RoleFromString(dto.ActorRole)
		if err != nil {
			return nil, err
		}
		actor, err := kernel.NewActor(actorID, role)
		if err != nil {
			return nil, err
		}
		entry, err := order.NewHistoryEntry(status, actor, dto.OccurredAt)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, nil
}
