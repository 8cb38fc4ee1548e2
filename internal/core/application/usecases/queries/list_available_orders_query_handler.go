package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListAvailableOrdersQueryHandler lists ready, unassigned orders. With a
// positive radius and a known rider position the pool is cut to orders whose
// delivery point lies within radiusKm, nearest first.
type ListAvailableOrdersQueryHandler struct {
	db          *gorm.DB
	coordinator services.AssignmentCoordinator
	radiusKm    float64
}

func NewListAvailableOrdersQueryHandler(db *gorm.DB, radiusKm float64) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{
		db:          db,
		coordinator: services.NewAssignmentCoordinator(),
		radiusKm:    radiusKm,
	}
}

func (h ListAvailableOrdersQueryHandler) Handle(ctx context.Context, query ListAvailableOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireScope(query.Actor(), order.RoleRider, query.RiderID(), "list another rider's pool"); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = ?
			AND rider_id IS NULL
			AND is_active = ?
		ORDER BY created_at, id
	`, int(order.ReadyForPickup), true).Rows()
	if err != nil {
		return nil, err
	}

	views, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if h.radiusKm > 0 {
		views, err = h.nearby(ctx, query.RiderID(), views)
		if err != nil {
			return nil, err
		}
	}

	return redactAll(views, query.Actor()), nil
}

// nearby returns views unchanged when the rider has never reported a position.
func (h ListAvailableOrdersQueryHandler) nearby(ctx context.Context, riderID string, views []OrderView) ([]OrderView, error) {
	var origin struct {
		Latitude  float64
		Longitude float64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude
		FROM rider_locations
		WHERE rider_id = ?
	`, riderID).Row().Scan(&origin.Latitude, &origin.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return views, nil
	}
	if err != nil {
		return nil, err
	}

	from, err := kernel.NewGeoPoint(origin.Latitude, origin.Longitude)
	if err != nil {
		return nil, err
	}

	points := make([]kernel.GeoPoint, 0, len(views))
	for _, v := range views {
		p, pointErr := kernel.NewGeoPoint(v.Address.Latitude, v.Address.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		points = append(points, p)
	}

	ranked, err := h.coordinator.RankByDistance(from, points, h.radiusKm)
	if err != nil {
		return nil, err
	}

	result := make([]OrderView, 0, len(ranked))
	for _, r := range ranked {
		v := views[r.Index]
		distance := r.DistanceKm
		v.DistanceKm = &distance
		result = append(result, v)
	}

	return result, nil
}
