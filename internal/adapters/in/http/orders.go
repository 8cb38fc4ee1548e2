package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// bind decodes the body into dst and runs its validate tags.
func (s *Server) bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return s.validate.Struct(dst)
}

// respondOrder renders a command result with the same PIN redaction the
// read side applies.
func (s *Server) respondOrder(c echo.Context, code int, actor order.Actor, o *order.Order) error {
	return c.JSON(code, orderFromView(viewFromOrder(o).RedactFor(actor)))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req createOrderRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	items, addr, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(actor, kernel.NewUUID(), req.RestaurantID, items, s.deliveryCharge, addr)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusCreated, actor, o)
}

// ListOrders handles GET /api/v1/orders. The role parameter picks the list:
// a customer's orders, a restaurant's orders (optionally filtered by status)
// or the rider pickup pool.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	params, err := bindListOrdersParams(c, actor)
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.Request().Context()
	var views []queries.OrderView

	switch params.Role {
	case order.RoleCustomer:
		query, qErr := queries.NewListCustomerOrdersQuery(actor, params.ScopeID)
		if qErr != nil {
			return s.fail(c, qErr)
		}
		views, err = s.handlers.ListCustomerOrders.Handle(ctx, query)
	case order.RoleRestaurant:
		query, qErr := queries.NewListRestaurantOrdersQuery(actor, params.ScopeID, params.Statuses)
		if qErr != nil {
			return s.fail(c, qErr)
		}
		views, err = s.handlers.ListRestaurantOrders.Handle(ctx, query)
	case order.RoleRider:
		query, qErr := queries.NewListAvailableOrdersQuery(actor, params.ScopeID)
		if qErr != nil {
			return s.fail(c, qErr)
		}
		views, err = s.handlers.ListAvailableOrders.Handle(ctx, query)
	default:
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "role must be customer, restaurant or rider",
		})
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersFromViews(views))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderFromView(view))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req changeStatusRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	event, err := order.ParseEvent(req.Event)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, orderID, event, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, actor, o)
}

// VerifyRiderPin handles PATCH /api/v1/orders/{id}/verify-rider-pin.
func (s *Server) VerifyRiderPin(c echo.Context) error {
	return s.verifyPin(c, order.PinKindRider)
}

// VerifyCustomerPin handles PATCH /api/v1/orders/{id}/verify-customer-pin.
func (s *Server) VerifyCustomerPin(c echo.Context) error {
	return s.verifyPin(c, order.PinKindCustomer)
}

func (s *Server) verifyPin(c echo.Context, kind order.PinKind) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req pinRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewVerifyPinCommand(actor, orderID, kind, req.Pin)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.VerifyPin.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, actor, o)
}

// AssignOrder handles POST /api/v1/orders/{id}/assign.
func (s *Server) AssignOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(actor, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, actor, o)
}

// ReleaseOrder handles POST /api/v1/orders/{id}/release.
func (s *Server) ReleaseOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReleaseOrderCommand(actor, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.ReleaseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, actor, o)
}

// ResetPinAttempts handles POST /api/v1/orders/{id}/pin-attempts/reset.
func (s *Server) ResetPinAttempts(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req resetPinAttemptsRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	kind, err := order.ParsePinKind(req.Kind)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewResetPinAttemptsCommand(actor, orderID, kind)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.ResetPinAttempts.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondOrder(c, http.StatusOK, actor, o)
}
