// Package http exposes the order core over a JSON API. The caller's identity
// arrives in X-Actor-Id and X-Actor-Role headers, set by the API gateway
// that authenticated the request; this layer trusts them but validates their
// shape.
package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartItemHandler commands.AddCartItemCommandHandler
	applyCouponHandler commands.ApplyCouponCommandHandler
	checkoutHandler    commands.CheckoutCommandHandler
	transitionHandler  commands.TransitionOrderCommandHandler

	// Query handlers
	pendingForBusinessHandler queries.PendingForBusinessQueryHandler
	activeForCourierHandler   queries.ActiveForCourierQueryHandler
	customerHistoryHandler    queries.CustomerHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	applyCouponHandler commands.ApplyCouponCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	pendingForBusinessHandler queries.PendingForBusinessQueryHandler,
	activeForCourierHandler queries.ActiveForCourierQueryHandler,
	customerHistoryHandler queries.CustomerHistoryQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:        addCartItemHandler,
		applyCouponHandler:        applyCouponHandler,
		checkoutHandler:           checkoutHandler,
		transitionHandler:         transitionHandler,
		pendingForBusinessHandler: pendingForBusinessHandler,
		activeForCourierHandler:   activeForCourierHandler,
		customerHistoryHandler:    customerHistoryHandler,
	}
}

// RegisterRoutes attaches all marketplace endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/cart/items", s.AddCartItem)
	api.POST("/cart/coupon", s.ApplyCoupon)
	api.POST("/checkout", s.Checkout)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.GET("/orders", s.GetOrders)
}

// Error is the uniform JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddCartItemRequest is the body of POST /api/v1/cart/items.
type AddCartItemRequest struct {
	RestaurantID string `json:"restaurant_id"`
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	UnitPrice    string `json:"unit_price"`
	Delta        int    `json:"delta"`
}

// ApplyCouponRequest is the body of POST /api/v1/cart/coupon.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// CheckoutRequest is the body of POST /api/v1/checkout.
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `json:"payment_method"`
}

// TransitionRequest is the body of POST /api/v1/orders/:id/transition.
type TransitionRequest struct {
	ToStatus string `json:"to_status"`
}

// PriceBreakdownView renders a price breakdown with fixed two-decimal
// amounts.
type PriceBreakdownView struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
}

// CartSummaryView is returned by cart mutations.
type CartSummaryView struct {
	Breakdown     PriceBreakdownView `json:"breakdown"`
	CartCleared   bool               `json:"cart_cleared"`
	CouponRemoved bool               `json:"coupon_removed"`
}

// CheckoutView is returned by a successful checkout.
type CheckoutView struct {
	OrderID    string             `json:"order_id"`
	Breakdown  PriceBreakdownView `json:"breakdown"`
	PaymentRef string             `json:"payment_ref"`
}

// OrderView renders an order for transition responses and dashboards.
type OrderView struct {
	ID         string   `json:"id"`
	CustomerID string   `json:"customer_id"`
	BusinessID string   `json:"business_id"`
	CourierID  string   `json:"courier_id,omitempty"`
	Status     string   `json:"status"`
	Total      string   `json:"total"`
	Actions    []string `json:"actions"`
}

// AddCartItem handles POST /api/v1/cart/items - changes an item quantity in
// the caller's cart.
func (s *Server) AddCartItem(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx, kernel.RoleCustomer)
	if err != nil {
		return err
	}

	var req AddCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid restaurant id")
	}
	itemID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item id")
	}
	unitPrice, err := kernel.NewMoneyFromString(req.UnitPrice)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid unit price")
	}

	cmd, err := commands.NewAddCartItemCommand(actor.ID(), restaurantID, itemID, req.Name, unitPrice, req.Delta)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid cart mutation: "+err.Error())
	}

	result, err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartSummaryView(result))
}

// ApplyCoupon handles POST /api/v1/cart/coupon - applies a coupon code to
// the caller's cart.
func (s *Server) ApplyCoupon(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx, kernel.RoleCustomer)
	if err != nil {
		return err
	}

	var req ApplyCouponRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewApplyCouponCommand(actor.ID(), req.Code)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid coupon request: "+err.Error())
	}

	result, err := s.applyCouponHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartSummaryView(result))
}

// Checkout handles POST /api/v1/checkout - turns the caller's cart into an
// order.
func (s *Server) Checkout(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx, kernel.RoleCustomer)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCheckoutCommand(actor.ID(), req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid checkout request: "+err.Error())
	}

	result, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutView{
		OrderID:    result.OrderID.String(),
		Breakdown:  breakdownView(result.Breakdown),
		PaymentRef: result.PaymentRef,
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an
// order to a new status on behalf of the caller.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	toStatus, err := order.StatusFromString(req.ToStatus)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid target status")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, toStatus, actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid transition request: "+err.Error())
	}

	updated, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFromAggregate(updated, actor.Role()))
}

// GetOrders handles GET /api/v1/orders - the role-specific dashboard list.
// Customers see their history, businesses their pending queue, couriers
// their working set.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return err
	}

	var responses []queries.OrderResponse
	switch actor.Role() {
	case kernel.RoleCustomer:
		query, queryErr := queries.NewCustomerHistoryQuery(actor.ID())
		if queryErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, queryErr.Error())
		}
		responses, err = s.customerHistoryHandler.Handle(ctx.Request().Context(), query)
	case kernel.RoleBusiness:
		query, queryErr := queries.NewPendingForBusinessQuery(actor.ID())
		if queryErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, queryErr.Error())
		}
		responses, err = s.pendingForBusinessHandler.Handle(ctx.Request().Context(), query)
	case kernel.RoleCourier:
		query, queryErr := queries.NewActiveForCourierQuery(actor.ID())
		if queryErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, queryErr.Error())
		}
		responses, err = s.activeForCourierHandler.Handle(ctx.Request().Context(), query)
	default:
		return errorJSON(ctx, http.StatusForbidden, "Role has no order dashboard")
	}
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	views := make([]OrderView, len(responses))
	for i, resp := range responses {
		views[i] = orderViewFromResponse(resp)
	}

	return ctx.JSON(http.StatusOK, views)
}

// actorFromHeaders builds the acting identity from the gateway headers.
// When allowed roles are given, other roles are rejected with 403.
func actorFromHeaders(ctx echo.Context, allowed ...kernel.Role) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return kernel.Actor{}, errorJSON(ctx, http.StatusUnauthorized, "Missing or invalid actor identity")
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return kernel.Actor{}, errorJSON(ctx, http.StatusUnauthorized, "Missing or invalid actor role")
	}

	actor, err := kernel.NewActor(id, role)
	if err != nil {
		return kernel.Actor{}, errorJSON(ctx, http.StatusUnauthorized, "Invalid actor")
	}

	if len(allowed) > 0 {
		for _, r := range allowed {
			if role == r {
				return actor, nil
			}
		}
		return kernel.Actor{}, errorJSON(ctx, http.StatusForbidden, "Operation is not available to this role")
	}

	return actor, nil
}

// domainError maps domain and application errors onto HTTP statuses.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, ports.ErrPaymentFailed):
		return errorJSON(ctx, http.StatusPaymentRequired, "Payment was declined")
	case errors.Is(err, order.ErrActorForbidden):
		return errorJSON(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrCourierConflict),
		errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, commands.ErrCourierBusy),
		errors.Is(err, cart.ErrCouponIneligible):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, cart.ErrItemNotInCart),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func cartSummaryView(result commands.CartSummaryResult) CartSummaryView {
	return CartSummaryView{
		Breakdown:     breakdownView(result.Breakdown),
		CartCleared:   result.CartCleared,
		CouponRemoved: result.CouponRemoved,
	}
}

func breakdownView(b order.PriceBreakdown) PriceBreakdownView {
	return PriceBreakdownView{
		Subtotal:    b.Subtotal().String(),
		DeliveryFee: b.DeliveryFee().String(),
		Discount:    b.Discount().String(),
		Total:       b.Total().String(),
	}
}

func orderViewFromAggregate(o *order.Order, role kernel.Role) OrderView {
	view := OrderView{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		BusinessID: o.BusinessID().String(),
		Status:     o.Status().String(),
		Total:      o.PriceSnapshot().Total().String(),
		Actions:    statusNames(o.Status().AllowedNext(role)),
	}
	if courierID := o.CourierID(); courierID != nil {
		view.CourierID = courierID.String()
	}
	return view
}

func orderViewFromResponse(resp queries.OrderResponse) OrderView {
	view := OrderView{
		ID:         resp.ID.String(),
		CustomerID: resp.CustomerID.String(),
		BusinessID: resp.BusinessID.String(),
		Status:     resp.Status.String(),
		Total:      resp.Total,
		Actions:    statusNames(resp.Actions),
	}
	if resp.CourierID != nil {
		view.CourierID = resp.CourierID.String()
	}
	return view
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return names
}
