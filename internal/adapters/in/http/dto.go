// Package http implements the REST and websocket surface of the
// marketplace. Handlers translate between the wire and the application's
// commands and queries; all money on the wire is integer cents.
package http

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CustomerRequest is the customer snapshot supplied at checkout.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// LineItemRequest is one cart line supplied at checkout or quoting.
type LineItemRequest struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// CheckoutRequest creates a new order.
type CheckoutRequest struct {
	RestaurantID string            `json:"restaurant_id"`
	Customer     CustomerRequest   `json:"customer"`
	Items        []LineItemRequest `json:"items"`
}

// FeesResponse is a fee breakdown in cents.
type FeesResponse struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	DeliveryCents int64 `json:"delivery_cents"`
	ServiceCents  int64 `json:"service_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// CheckoutResponse confirms order creation.
type CheckoutResponse struct {
	OrderID     string       `json:"order_id"`
	TrackingURL string       `json:"tracking_url"`
	Fees        FeesResponse `json:"fees"`
}

// QuoteRequest previews fees for a cart without creating an order.
type QuoteRequest struct {
	RestaurantID string            `json:"restaurant_id"`
	Items        []LineItemRequest `json:"items"`
}

// ClaimRequest identifies the rider claiming an order.
type ClaimRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ClaimResponse confirms a successful claim.
type ClaimResponse struct {
	OrderID string `json:"order_id"`
	RiderID string `json:"rider_id"`
}

// TrackingStepResponse is one progress bar step.
type TrackingStepResponse struct {
	Label  string `json:"label"`
	Done   bool   `json:"done"`
	Active bool   `json:"active"`
}

// TrackingResponse is the customer tracking view.
type TrackingResponse struct {
	OrderID        string                 `json:"order_id"`
	ShortID        string                 `json:"short_id"`
	RestaurantName string                 `json:"restaurant_name"`
	Status         string                 `json:"status"`
	Declined       bool                   `json:"declined"`
	Steps          []TrackingStepResponse `json:"steps"`
	RiderName      string                 `json:"rider_name,omitempty"`
	RiderPhone     string                 `json:"rider_phone,omitempty"`
	Fees           FeesResponse           `json:"fees"`
	PlacedAgo      string                 `json:"placed_ago"`
}

// AvailableDeliveryResponse is one claimable order on the rider board.
type AvailableDeliveryResponse struct {
	OrderID           string `json:"order_id"`
	RestaurantName    string `json:"restaurant_name"`
	RestaurantAddress string `json:"restaurant_address"`
	DeliveryAddress   string `json:"delivery_address"`
	ItemCount         int    `json:"item_count"`
	DeliveryFeeCents  int64  `json:"delivery_fee_cents"`
	TotalCents        int64  `json:"total_cents"`
	PlacedAgo         string `json:"placed_ago"`
}

// RestaurantOrderResponse is one row on the restaurant dashboard.
type RestaurantOrderResponse struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	ItemCount    int    `json:"item_count"`
	Status       string `json:"status"`
	TotalCents   int64  `json:"total_cents"`
	PlacedAgo    string `json:"placed_ago"`
}

// RestaurantDashboardResponse is the dashboard payload.
type RestaurantDashboardResponse struct {
	Orders           []RestaurantOrderResponse `json:"orders"`
	ActiveCount      int                       `json:"active_count"`
	OpenRevenueCents int64                     `json:"open_revenue_cents"`
}

// RiderDeliveryResponse is one claimed order in a rider's history.
type RiderDeliveryResponse struct {
	OrderID          string `json:"order_id"`
	ShortID          string `json:"short_id"`
	RestaurantName   string `json:"restaurant_name"`
	CustomerAddress  string `json:"customer_address"`
	Status           string `json:"status"`
	DeliveryFeeCents int64  `json:"delivery_fee_cents"`
	TotalCents       int64  `json:"total_cents"`
	PlacedAgo        string `json:"placed_ago"`
}

// RiderDeliveriesResponse is a rider's delivery history with earnings.
type RiderDeliveriesResponse struct {
	RiderName   string                  `json:"rider_name"`
	Deliveries  []RiderDeliveryResponse `json:"deliveries"`
	EarnedCents int64                   `json:"earned_cents"`
}

// RewardOrderResponse is one delivered order contributing points.
type RewardOrderResponse struct {
	ShortID      string `json:"short_id"`
	TotalCents   int64  `json:"total_cents"`
	PointsEarned int    `json:"points_earned"`
	DeliveredAgo string `json:"delivered_ago"`
}

// RewardsResponse is the customer's reward balance.
type RewardsResponse struct {
	Email  string                `json:"email"`
	Points int                   `json:"points"`
	Orders []RewardOrderResponse `json:"orders"`
}
