package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListRiderOrders handles GET /api/v1/riders/{id}/orders.
func (s *Server) ListRiderOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := pathRiderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListRiderOrdersQuery(actor, riderID)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListRiderOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersFromViews(views))
}

// SetRiderAvailability handles PUT /api/v1/riders/{id}/availability.
func (s *Server) SetRiderAvailability(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := pathRiderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req availabilityRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(actor, riderID, *req.Online)
	if err != nil {
		return s.fail(c, err)
	}
	r, err := s.handlers.SetRiderAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, riderFromDomain(r))
}

// SetRiderCapacity handles PUT /api/v1/riders/{id}/capacity.
func (s *Server) SetRiderCapacity(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := pathRiderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req capacityRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetRiderCapacityCommand(actor, riderID, req.Capacity)
	if err != nil {
		return s.fail(c, err)
	}
	r, err := s.handlers.SetRiderCapacity.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, riderFromDomain(r))
}

// ReportLocation handles POST /api/v1/riders/{id}/location. Reports older
// than the stored one are accepted and dropped.
func (s *Server) ReportLocation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := pathRiderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req locationRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	point, err := kernel.NewGeoPoint(*req.Lat, *req.Lng)
	if err != nil {
		return s.fail(c, err)
	}
	var orderID *kernel.UUID
	if req.OrderID != nil {
		id, parseErr := kernel.UUIDFromString(*req.OrderID)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		orderID = &id
	}

	cmd, err := commands.NewReportLocationCommand(actor, riderID, point, *req.Timestamp, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if _, err = s.handlers.ReportLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetRiderLocation handles GET /api/v1/riders/{id}/location.
func (s *Server) GetRiderLocation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	riderID, err := pathRiderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetRiderLocationQuery(actor, riderID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetRiderLocation.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, locationFromView(view))
}
