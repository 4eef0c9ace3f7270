// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database rows, including the conditional writes that arbitrate concurrent
// status transitions.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The cart snapshot is stored as a JSONB array; fee fields are
// NUMERIC(10,2) dollar amounts; status holds the lowercase wire token.
type OrderDTO struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey"`
	RestaurantID    uuid.UUID     `gorm:"type:uuid;index"`
	CustomerName    string        `gorm:"type:text"`
	CustomerEmail   string        `gorm:"type:text;index"`
	CustomerPhone   string        `gorm:"type:text"`
	CustomerAddress string        `gorm:"type:text"`
	Items           []LineItemDTO `gorm:"type:jsonb;serializer:json"`
	Subtotal        float64       `gorm:"type:numeric(10,2)"`
	DeliveryFee     float64       `gorm:"type:numeric(10,2)"`
	ServiceFee      float64       `gorm:"type:numeric(10,2)"`
	Total           float64       `gorm:"type:numeric(10,2)"`
	Status          string        `gorm:"type:text;index"`
	RiderID         *uuid.UUID    `gorm:"type:uuid"`
	CreatedAt       time.Time     `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one cart line inside the JSONB items column.
type LineItemDTO struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for _, li := range aggregate.Items() {
		items = append(items, LineItemDTO{
			ItemID:    li.ItemID(),
			Name:      li.Name(),
			UnitPrice: li.UnitPrice().Float64(),
			Quantity:  li.Quantity(),
		})
	}

	fees := aggregate.Fees()
	customer := aggregate.Customer()

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		CustomerName:    customer.Name(),
		CustomerEmail:   customer.Email(),
		CustomerPhone:   customer.Phone(),
		CustomerAddress: customer.Address(),
		Items:           items,
		Subtotal:        fees.Subtotal().Float64(),
		DeliveryFee:     fees.DeliveryFee().Float64(),
		ServiceFee:      fees.ServiceFee().Float64(),
		Total:           fees.Total().Float64(),
		Status:          aggregate.Status().String(),
		RiderID:         riderID,
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database row to an order aggregate, re-validating all
// domain invariants via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	customer, err := order.NewCustomer(
		dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone, dto.CustomerAddress)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, li := range dto.Items {
		item, itemErr := order.NewLineItem(
			li.ItemID, li.Name, kernel.NewMoneyFromFloat(li.UnitPrice), li.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	fees, err := order.RestoreFees(
		kernel.NewMoneyFromFloat(dto.Subtotal),
		kernel.NewMoneyFromFloat(dto.DeliveryFee),
		kernel.NewMoneyFromFloat(dto.ServiceFee),
		kernel.NewMoneyFromFloat(dto.Total),
	)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, restaurantID, customer, items, fees, status, riderID, dto.CreatedAt)
}
