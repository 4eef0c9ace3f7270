package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// trackingStepLabels are the happy-path steps shown on the tracking page,
// indexed by Status.ProgressIndex.
var trackingStepLabels = [...]string{
	"Order placed",
	"Confirmed",
	"Being prepared",
	"Out for delivery",
	"Delivered",
}

// GetOrderTrackingQueryHandler serves the customer tracking page for a
// single order: the progress bar, fee breakdown, and rider contact once a
// rider has claimed the delivery.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle builds the tracking view. Returns errs.ErrObjectNotFound when the
// order does not exist.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			r.name,
			o.status,
			o.subtotal,
			o.delivery_fee,
			o.service_fee,
			o.total,
			o.created_at,
			rd.name,
			rd.phone
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		LEFT JOIN riders rd ON rd.id = o.rider_id
		WHERE o.id = ?
	`, query.OrderID().String()).Row()

	var resp GetOrderTrackingQueryResponse
	var id uuid.UUID
	var statusToken string
	var subtotal, deliveryFee, serviceFee, total float64
	var createdAt time.Time
	var riderName, riderPhone sql.NullString

	err := row.Scan(
		&id,
		&resp.RestaurantName,
		&statusToken,
		&subtotal,
		&deliveryFee,
		&serviceFee,
		&total,
		&createdAt,
		&riderName,
		&riderPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderTrackingQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	status, err := order.StatusFromString(statusToken)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp.OrderID = orderID
	resp.ShortID = shortOrderID(orderID)
	resp.Status = status.String()
	resp.Declined = status == order.Declined
	resp.Steps = trackingSteps(status)
	resp.RiderName = riderName.String
	resp.RiderPhone = riderPhone.String
	resp.SubtotalCents = kernel.NewMoneyFromFloat(subtotal).Cents()
	resp.DeliveryCents = kernel.NewMoneyFromFloat(deliveryFee).Cents()
	resp.ServiceCents = kernel.NewMoneyFromFloat(serviceFee).Cents()
	resp.TotalCents = kernel.NewMoneyFromFloat(total).Cents()
	resp.PlacedAgo = timeAgo(createdAt, time.Now().UTC())

	return resp, nil
}

// trackingSteps renders the progress bar for a status: steps before the
// current one are done, the current one is active. Declined orders are off
// the happy path and get no bar.
func trackingSteps(status order.Status) []TrackingStep {
	index := status.ProgressIndex()
	if index < 0 {
		return []TrackingStep{}
	}

	steps := make([]TrackingStep, len(trackingStepLabels))
	for i, label := range trackingStepLabels {
		steps[i] = TrackingStep{
			Label:  label,
			Done:   i < index,
			Active: i == index,
		}
	}

	// A delivered order's final step is both reached and finished.
	if status == order.Delivered {
		steps[len(steps)-1].Done = true
	}

	return steps
}

// shortOrderID is the display form of an order id: its first segment,
// upper-cased, e.g. "550E8400".
func shortOrderID(id kernel.UUID) string {
	full := id.String()
	if i := strings.IndexByte(full, '-'); i > 0 {
		full = full[:i]
	}
	return strings.ToUpper(full)
}
