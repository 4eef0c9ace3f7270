package http

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	baseURL string

	// Command handlers
	checkoutHandler         commands.CheckoutCommandHandler
	confirmOrderHandler     commands.ConfirmOrderCommandHandler
	markOrderReadyHandler   commands.MarkOrderReadyCommandHandler
	declineOrderHandler     commands.DeclineOrderCommandHandler
	claimOrderHandler       commands.ClaimOrderCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler

	// Query handlers
	feeQuoteHandler            queries.GetFeeQuoteQueryHandler
	orderTrackingHandler       queries.GetOrderTrackingQueryHandler
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	restaurantOrdersHandler    queries.GetRestaurantOrdersQueryHandler
	customerRewardsHandler     queries.GetCustomerRewardsQueryHandler
	riderDeliveriesHandler     queries.GetRiderDeliveriesQueryHandler

	ws *OrderChangeRelay
}

// NewServer creates the HTTP server with the required command and query
// handlers. baseURL is used to build tracking links in checkout responses.
func NewServer(
	baseURL string,
	checkoutHandler commands.CheckoutCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	markOrderReadyHandler commands.MarkOrderReadyCommandHandler,
	declineOrderHandler commands.DeclineOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	feeQuoteHandler queries.GetFeeQuoteQueryHandler,
	orderTrackingHandler queries.GetOrderTrackingQueryHandler,
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	restaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler,
	customerRewardsHandler queries.GetCustomerRewardsQueryHandler,
	riderDeliveriesHandler queries.GetRiderDeliveriesQueryHandler,
	ws *OrderChangeRelay,
) *Server {
	return &Server{
		baseURL:                    baseURL,
		checkoutHandler:            checkoutHandler,
		confirmOrderHandler:        confirmOrderHandler,
		markOrderReadyHandler:      markOrderReadyHandler,
		declineOrderHandler:        declineOrderHandler,
		claimOrderHandler:          claimOrderHandler,
		completeDeliveryHandler:    completeDeliveryHandler,
		feeQuoteHandler:            feeQuoteHandler,
		orderTrackingHandler:       orderTrackingHandler,
		availableDeliveriesHandler: availableDeliveriesHandler,
		restaurantOrdersHandler:    restaurantOrdersHandler,
		customerRewardsHandler:     customerRewardsHandler,
		riderDeliveriesHandler:     riderDeliveriesHandler,
		ws:                         ws,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.Checkout)
	api.POST("/orders/quote", s.QuoteFees)
	api.GET("/orders/:id", s.TrackOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/ready", s.MarkOrderReady)
	api.POST("/orders/:id/decline", s.DeclineOrder)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/delivered", s.CompleteDelivery)
	api.GET("/deliveries/available", s.AvailableDeliveries)
	api.GET("/restaurants/:id/orders", s.RestaurantOrders)
	api.GET("/riders/:id/deliveries", s.RiderDeliveries)
	api.GET("/customers/rewards", s.CustomerRewards)

	if s.ws != nil {
		e.GET("/ws/orders", s.ws.Handle)
	}
}

// Checkout handles POST /api/v1/orders: creates a pending order from the
// cart and returns its id, fee breakdown, and tracking URL.
func (s *Server) Checkout(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurant id")
	}

	customer, err := order.NewCustomer(
		req.Customer.Name, req.Customer.Email, req.Customer.Phone, req.Customer.Address)
	if err != nil {
		return s.mapError(ctx, err)
	}

	items, err := itemsFromRequest(req.Items)
	if err != nil {
		return s.mapError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, restaurantID, customer, items)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	// Echo the exact fee numbers the order was created with.
	quote, err := queries.NewGetFeeQuoteQuery(restaurantID, items)
	if err != nil {
		return s.mapError(ctx, err)
	}
	fees, err := s.feeQuoteHandler.Handle(ctx.Request().Context(), quote)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		OrderID:     orderID.String(),
		TrackingURL: fmt.Sprintf("%s/track/%s", s.baseURL, orderID.String()),
		Fees:        feesResponse(fees),
	})
}

// QuoteFees handles POST /api/v1/orders/quote: previews the fee breakdown
// for a cart without creating an order.
func (s *Server) QuoteFees(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurant id")
	}

	items, err := itemsFromRequest(req.Items)
	if err != nil {
		return s.mapError(ctx, err)
	}

	query, err := queries.NewGetFeeQuoteQuery(restaurantID, items)
	if err != nil {
		return s.mapError(ctx, err)
	}

	fees, err := s.feeQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, feesResponse(fees))
}

// TrackOrder handles GET /api/v1/orders/:id.
func (s *Server) TrackOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	tracking, err := s.orderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	steps := make([]TrackingStepResponse, 0, len(tracking.Steps))
	for _, step := range tracking.Steps {
		steps = append(steps, TrackingStepResponse{
			Label: step.Label, Done: step.Done, Active: step.Active,
		})
	}

	return ctx.JSON(http.StatusOK, TrackingResponse{
		OrderID:        tracking.OrderID.String(),
		ShortID:        tracking.ShortID,
		RestaurantName: tracking.RestaurantName,
		Status:         tracking.Status,
		Declined:       tracking.Declined,
		Steps:          steps,
		RiderName:      tracking.RiderName,
		RiderPhone:     tracking.RiderPhone,
		Fees: FeesResponse{
			SubtotalCents: tracking.SubtotalCents,
			DeliveryCents: tracking.DeliveryCents,
			ServiceCents:  tracking.ServiceCents,
			TotalCents:    tracking.TotalCents,
		},
		PlacedAgo: tracking.PlacedAgo,
	})
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderReady handles POST /api/v1/orders/:id/ready.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.markOrderReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeclineOrder handles POST /api/v1/orders/:id/decline.
func (s *Server) DeclineOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeclineOrderCommand(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.declineOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ClaimRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, riderID, req.Name, req.Phone)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ClaimResponse{
		OrderID: orderID.String(),
		RiderID: riderID.String(),
	})
}

// CompleteDelivery handles POST /api/v1/orders/:id/delivered.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AvailableDeliveries handles GET /api/v1/deliveries/available.
func (s *Server) AvailableDeliveries(ctx echo.Context) error {
	query := queries.NewGetAvailableDeliveriesQuery()

	deliveries, err := s.availableDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]AvailableDeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, AvailableDeliveryResponse{
			OrderID:           d.OrderID.String(),
			RestaurantName:    d.RestaurantName,
			RestaurantAddress: d.RestaurantAddress,
			DeliveryAddress:   d.DeliveryAddress,
			ItemCount:         d.ItemCount,
			DeliveryFeeCents:  d.DeliveryFeeCents,
			TotalCents:        d.TotalCents,
			PlacedAgo:         d.PlacedAgo,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// RestaurantOrders handles GET /api/v1/restaurants/:id/orders.
func (s *Server) RestaurantOrders(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid restaurant id")
	}

	query, err := queries.NewGetRestaurantOrdersQuery(restaurantID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	dashboard, err := s.restaurantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	orders := make([]RestaurantOrderResponse, 0, len(dashboard.Orders))
	for _, o := range dashboard.Orders {
		orders = append(orders, RestaurantOrderResponse{
			OrderID:      o.OrderID.String(),
			CustomerName: o.CustomerName,
			ItemCount:    o.ItemCount,
			Status:       o.Status,
			TotalCents:   o.TotalCents,
			PlacedAgo:    o.PlacedAgo,
		})
	}

	return ctx.JSON(http.StatusOK, RestaurantDashboardResponse{
		Orders:           orders,
		ActiveCount:      dashboard.ActiveCount,
		OpenRevenueCents: dashboard.OpenRevenueCents,
	})
}

// RiderDeliveries handles GET /api/v1/riders/:id/deliveries.
func (s *Server) RiderDeliveries(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid rider id")
	}

	query, err := queries.NewGetRiderDeliveriesQuery(riderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	history, err := s.riderDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	deliveries := make([]RiderDeliveryResponse, 0, len(history.Deliveries))
	for _, d := range history.Deliveries {
		deliveries = append(deliveries, RiderDeliveryResponse{
			OrderID:          d.OrderID.String(),
			ShortID:          d.ShortID,
			RestaurantName:   d.RestaurantName,
			CustomerAddress:  d.CustomerAddress,
			Status:           d.Status,
			DeliveryFeeCents: d.DeliveryFeeCents,
			TotalCents:       d.TotalCents,
			PlacedAgo:        d.PlacedAgo,
		})
	}

	return ctx.JSON(http.StatusOK, RiderDeliveriesResponse{
		RiderName:   history.RiderName,
		Deliveries:  deliveries,
		EarnedCents: history.EarnedCents,
	})
}

// CustomerRewards handles GET /api/v1/customers/rewards?email=.
func (s *Server) CustomerRewards(ctx echo.Context) error {
	query, err := queries.NewGetCustomerRewardsQuery(ctx.QueryParam("email"))
	if err != nil {
		return s.mapError(ctx, err)
	}

	rewards, err := s.customerRewardsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	orders := make([]RewardOrderResponse, 0, len(rewards.Orders))
	for _, o := range rewards.Orders {
		orders = append(orders, RewardOrderResponse{
			ShortID:      o.ShortID,
			TotalCents:   o.TotalCents,
			PointsEarned: o.PointsEarned,
			DeliveredAgo: o.DeliveredAgo,
		})
	}

	return ctx.JSON(http.StatusOK, RewardsResponse{
		Email:  rewards.Email,
		Points: rewards.Points,
		Orders: orders,
	})
}

// mapError translates application errors to HTTP status codes.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrClaimConflict),
		errors.Is(err, order.ErrInvalidTransition):
		return jsonError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	default:
		return jsonError(ctx, http.StatusInternalServerError, "internal error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusBadRequest, message)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func itemsFromRequest(reqItems []LineItemRequest) ([]order.LineItem, error) {
	if len(reqItems) == 0 {
		return nil, errs.NewValueIsRequiredError("cart items")
	}

	items := make([]order.LineItem, 0, len(reqItems))
	for _, ri := range reqItems {
		item, err := order.NewLineItem(
			ri.ItemID, ri.Name, kernel.NewMoneyFromCents(ri.UnitPriceCents), ri.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func feesResponse(fees queries.GetFeeQuoteQueryResponse) FeesResponse {
	return FeesResponse{
		SubtotalCents: fees.SubtotalCents,
		DeliveryCents: fees.DeliveryCents,
		ServiceCents:  fees.ServiceCents,
		TotalCents:    fees.TotalCents,
	}
}
