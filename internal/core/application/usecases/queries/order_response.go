// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for the role-specific dashboards,
// which poll them on a fixed interval.
package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderResponse is the dashboard read model for one order. Actions lists the
// statuses the viewing role may move the order to, computed from the same
// transition table the write side enforces so the two can never drift.
type OrderResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	BusinessID      kernel.UUID
	CourierID       *kernel.UUID
	Status          order.Status
	Total           string
	DeliveryAddress string
	CreatedAt       time.Time
	Actions         []order.Status
}

// scanOrderRows maps raw order rows into responses, attaching the actions
// available to the viewing role.
func scanOrderRows(ctx context.Context, db *gorm.DB, query string, role kernel.Role, args ...any) ([]OrderResponse, error) {
	responses := make([]OrderResponse, 0)

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			customerID uuid.UUID
			businessID uuid.UUID
			courierID  *uuid.UUID
			status     string
			total      string
			address    string
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &customerID, &businessID, &courierID, &status, &total, &address, &createdAt); err != nil {
			return nil, err
		}

		resp, err := buildOrderResponse(id, customerID, businessID, courierID, status, total, address, createdAt, role)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func buildOrderResponse(
	id, customerID, businessID uuid.UUID,
	courierID *uuid.UUID,
	status, total, address string,
	createdAt time.Time,
	role kernel.Role,
) (OrderResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	customer, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	business, err := kernel.UUIDFromBytes(businessID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	var courier *kernel.UUID
	if courierID != nil {
		c, courierErr := kernel.UUIDFromBytes((*courierID)[:])
		if courierErr != nil {
			return OrderResponse{}, courierErr
		}
		courier = &c
	}

	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:              orderID,
		CustomerID:      customer,
		BusinessID:      business,
		CourierID:       courier,
		Status:          orderStatus,
		Total:           total,
		DeliveryAddress: address,
		CreatedAt:       createdAt,
		Actions:         orderStatus.AllowedNext(role),
	}, nil
}

const orderColumns = `
		id,
		customer_id,
		business_id,
		courier_id,
		status,
		total,
		delivery_address,
		created_at
`
