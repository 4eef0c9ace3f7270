package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRestaurantOrdersQueryHandler serves the restaurant dashboard. Active
// means any order not yet settled: pending through claimed. Delivered and
// declined orders are history and count toward neither the open workload
// nor its revenue.
type GetRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRestaurantOrdersQueryHandler creates a handler for restaurant
// dashboard queries.
func NewGetRestaurantOrdersQueryHandler(db *gorm.DB) GetRestaurantOrdersQueryHandler {
	return GetRestaurantOrdersQueryHandler{db: db}
}

// Handle returns the restaurant's orders newest first along with the active
// count and open revenue headline numbers.
func (h GetRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantOrdersQuery,
) (GetRestaurantOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRestaurantOrdersQueryResponse{}, err
	}

	resp := GetRestaurantOrdersQueryResponse{
		Orders: make([]RestaurantOrderView, 0),
	}
	now := time.Now().UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			jsonb_array_length(items),
			status,
			total,
			created_at
		FROM orders
		WHERE restaurant_id = ?
		ORDER BY created_at DESC
	`, query.RestaurantID().String()).Rows()
	if err != nil {
		return GetRestaurantOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var view RestaurantOrderView
		var id uuid.UUID
		var total float64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&view.CustomerName,
			&view.ItemCount,
			&view.Status,
			&total,
			&createdAt,
		)
		if err != nil {
			return GetRestaurantOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetRestaurantOrdersQueryResponse{}, idErr
		}
		view.OrderID = orderID
		view.TotalCents = kernel.NewMoneyFromFloat(total).Cents()
		view.PlacedAgo = timeAgo(createdAt, now)
		resp.Orders = append(resp.Orders, view)

		status, statusErr := order.StatusFromString(view.Status)
		if statusErr != nil {
			return GetRestaurantOrdersQueryResponse{}, statusErr
		}
		if status.IsActive() {
			resp.ActiveCount++
			resp.OpenRevenueCents += view.TotalCents
		}
	}

	if err = rows.Err(); err != nil {
		return GetRestaurantOrdersQueryResponse{}, err
	}

	return resp, nil
}
