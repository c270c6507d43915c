// Package http exposes the ordering engine over JSON HTTP. The
// authenticated actor arrives in X-User-ID / X-User-Role headers set
// by the upstream auth layer and is trusted as-is.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	checkoutHandler     commands.CheckoutCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	assignHandler       commands.AssignCourierCommandHandler
	acceptHandler       commands.AcceptOrderCommandHandler
	pickupHandler       commands.PickupTaskCommandHandler
	completeHandler     commands.CompleteTaskCommandHandler
	registerHandler     commands.RegisterCourierCommandHandler
	setStatusHandler    commands.SetCourierStatusCommandHandler

	getOrdersHandler      queries.GetOrdersQueryHandler
	availableHandler      queries.GetAvailableOrdersQueryHandler
	validateCouponHandler queries.ValidateCouponQueryHandler
	earningsHandler       queries.GetCourierEarningsQueryHandler

	logger *slog.Logger
}

// NewServer creates the HTTP server with all its handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignHandler commands.AssignCourierCommandHandler,
	acceptHandler commands.AcceptOrderCommandHandler,
	pickupHandler commands.PickupTaskCommandHandler,
	completeHandler commands.CompleteTaskCommandHandler,
	registerHandler commands.RegisterCourierCommandHandler,
	setStatusHandler commands.SetCourierStatusCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	availableHandler queries.GetAvailableOrdersQueryHandler,
	validateCouponHandler queries.ValidateCouponQueryHandler,
	earningsHandler queries.GetCourierEarningsQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		checkoutHandler:       checkoutHandler,
		changeStatusHandler:   changeStatusHandler,
		assignHandler:         assignHandler,
		acceptHandler:         acceptHandler,
		pickupHandler:         pickupHandler,
		completeHandler:       completeHandler,
		registerHandler:       registerHandler,
		setStatusHandler:      setStatusHandler,
		getOrdersHandler:      getOrdersHandler,
		availableHandler:      availableHandler,
		validateCouponHandler: validateCouponHandler,
		earningsHandler:       earningsHandler,
		logger:                logger,
	}
}

// RegisterRoutes attaches all routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.Checkout)
	e.GET("/orders/active/:userId", s.GetActiveOrders)
	e.GET("/orders/past/:userId", s.GetPastOrders)
	e.PUT("/orders/seller/orders/:id/status", s.ChangeOrderStatus)
	e.POST("/orders/seller/orders/:id/assign", s.AssignCourier)

	e.GET("/courier/available", s.GetAvailableOrders)
	e.POST("/courier/register", s.RegisterCourier)
	e.POST("/courier/tasks/:id/accept", s.AcceptOrder)
	e.PUT("/courier/tasks/:id/pickup", s.PickupTask)
	e.PUT("/courier/tasks/:id/complete", s.CompleteTask)
	e.GET("/courier/:id/earnings", s.GetCourierEarnings)
	e.PUT("/courier/:id/status", s.SetCourierStatus)

	e.POST("/cart/validate-coupon", s.ValidateCoupon)
}

// Health reports process liveness.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "status": "ok"})
}

type checkoutItemRequest struct {
	MealID   string `json:"meal_id"`
	Quantity int    `json:"quantity"`
}

type checkoutRequest struct {
	Items         []checkoutItemRequest `json:"items"`
	AddressID     *string               `json:"address_id"`
	PaymentMethod string                `json:"payment_method"`
	CouponCode    string                `json:"coupon_code"`
	ClientTotal   *float64              `json:"client_total"`
}

type orderItemResponse struct {
	MealName string  `json:"meal_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type orderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Status         string              `json:"status"`
	Subtotal       float64             `json:"subtotal"`
	DeliveryFee    float64             `json:"delivery_fee"`
	DiscountAmount float64             `json:"discount_amount"`
	TotalAmount    float64             `json:"total_amount"`
	Items          []orderItemResponse `json:"items"`
}

// Checkout handles POST /orders.
func (s *Server) Checkout(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req checkoutRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	lines := make([]commands.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		mealID, idErr := kernel.UUIDFromString(item.MealID)
		if idErr != nil {
			return s.fail(c, idErr)
		}
		lines = append(lines, commands.CartLine{MealID: mealID, Quantity: item.Quantity})
	}

	var addressID *kernel.UUID
	if req.AddressID != nil {
		parsed, idErr := kernel.UUIDFromString(*req.AddressID)
		if idErr != nil {
			return s.fail(c, idErr)
		}
		addressID = &parsed
	}

	cmd, err := commands.NewCheckoutCommand(
		userID, lines, addressID, req.PaymentMethod, req.CouponCode, req.ClientTotal,
	)
	if err != nil {
		return s.fail(c, err)
	}

	placed, err := s.checkoutHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	items := make([]orderItemResponse, 0, len(placed.Items()))
	for _, item := range placed.Items() {
		items = append(items, orderItemResponse{
			MealName: item.MealName(),
			Price:    item.Price(),
			Quantity: item.Quantity(),
			Subtotal: item.Subtotal(),
		})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"order": orderResponse{
			ID:             placed.ID().String(),
			OrderNumber:    placed.OrderNumber(),
			Status:         placed.Status().String(),
			Subtotal:       placed.Subtotal(),
			DeliveryFee:    placed.DeliveryFee(),
			DiscountAmount: placed.DiscountAmount(),
			TotalAmount:    placed.TotalAmount(),
			Items:          items,
		},
	})
}

// GetActiveOrders handles GET /orders/active/:userId.
func (s *Server) GetActiveOrders(c echo.Context) error {
	return s.getOrders(c, queries.ScopeActive)
}

// GetPastOrders handles GET /orders/past/:userId.
func (s *Server) GetPastOrders(c echo.Context) error {
	return s.getOrders(c, queries.ScopePast)
}

func (s *Server) getOrders(c echo.Context, scope queries.OrderScope) error {
	userID, err := kernel.UUIDFromString(c.Param("userId"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrdersQuery(userID, scope)
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.getOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "orders": orders})
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles PUT /orders/seller/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	userID, err := actorID(c)
	if err != nil {
		return s.fail(c, err)
	}
	role, err := order.RoleFromString(c.Request().Header.Get("X-User-Role"))
	if err != nil {
		return s.fail(c, err)
	}

	var req changeStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, userID, role, next)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.changeStatusHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// AssignCourier handles POST /orders/seller/orders/:id/assign, the
// push dispatch path.
func (s *Server) AssignCourier(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.assignHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// GetAvailableOrders handles GET /courier/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	available, err := s.availableHandler.Handle(c.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "orders": available})
}

type registerCourierRequest struct {
	Name string `json:"name"`
}

// RegisterCourier handles POST /courier/register.
func (s *Server) RegisterCourier(c echo.Context) error {
	courierID, err := actorID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req registerCourierRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRegisterCourierCommand(courierID, req.Name)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.registerHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{"success": true})
}

// AcceptOrder handles POST /courier/tasks/:id/accept. The id is the
// order id from the available listing; losing the claim race returns
// a conflict.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	courierID, err := actorID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, courierID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.acceptHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// PickupTask handles PUT /courier/tasks/:id/pickup.
func (s *Server) PickupTask(c echo.Context) error {
	taskID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	courierID, err := actorID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewPickupTaskCommand(taskID, courierID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.pickupHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

type completeTaskRequest struct {
	AdjustedPayout *float64 `json:"adjusted_payout"`
}

// CompleteTask handles PUT /courier/tasks/:id/complete.
func (s *Server) CompleteTask(c echo.Context) error {
	taskID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	courierID, err := actorID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req completeTaskRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCompleteTaskCommand(taskID, courierID, req.AdjustedPayout)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.completeHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// GetCourierEarnings handles GET /courier/:id/earnings.
func (s *Server) GetCourierEarnings(c echo.Context) error {
	courierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCourierEarningsQuery(courierID)
	if err != nil {
		return s.fail(c, err)
	}

	summary, err := s.earningsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "earnings": summary})
}

type setCourierStatusRequest struct {
	Status string `json:"status"`
}

// SetCourierStatus handles PUT /courier/:id/status.
func (s *Server) SetCourierStatus(c echo.Context) error {
	courierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req setCourierStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSetCourierStatusCommand(courierID, courier.Status(req.Status))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.setStatusHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

type validateCouponRequest struct {
	Code     string  `json:"code"`
	SellerID string  `json:"seller_id"`
	Subtotal float64 `json:"subtotal"`
}

// ValidateCoupon handles POST /cart/validate-coupon. Always 200 with
// an advisory verdict; only a malformed request is an error.
func (s *Server) ValidateCoupon(c echo.Context) error {
	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewValidateCouponQuery(req.Code, sellerID, req.Subtotal)
	if err != nil {
		return s.fail(c, err)
	}

	verdict, err := s.validateCouponHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "coupon": verdict})
}

// actorID reads the authenticated user from the X-User-ID header.
func actorID(c echo.Context) (kernel.UUID, error) {
	raw := c.Request().Header.Get("X-User-ID")
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("X-User-ID")
	}
	return kernel.UUIDFromString(raw)
}

// fail maps the errs taxonomy onto HTTP status codes and logs
// everything unexpected.
func (s *Server) fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, commands.ErrOrderAlreadyAssigned),
		errors.Is(err, services.ErrNoCourierAvailable):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(status, map[string]any{"success": false, "error": "internal error"})
	}

	return c.JSON(status, map[string]any{"success": false, "error": err.Error()})
}
