package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRiderLocationQueryHandler struct {
	db         *gorm.DB
	staleAfter time.Duration
}

// NewGetRiderLocationQueryHandler flags positions older than staleAfter. A
// non-positive staleAfter never flags.
func NewGetRiderLocationQueryHandler(db *gorm.DB, staleAfter time.Duration) GetRiderLocationQueryHandler {
	return GetRiderLocationQueryHandler{
		db:         db,
		staleAfter: staleAfter,
	}
}

func (h GetRiderLocationQueryHandler) Handle(ctx context.Context, query GetRiderLocationQuery) (RiderLocationView, error) {
	if err := query.Validate(); err != nil {
		return RiderLocationView{}, err
	}

	var (
		lat, lng float64
		nanos    int64
		orderID  *uuid.UUID
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude, recorded_at_nanos, order_id
		FROM rider_locations
		WHERE rider_id = ?
	`, query.RiderID()).Row().Scan(&lat, &lng, &nanos, &orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return RiderLocationView{}, errs.NewObjectNotFoundError("location", query.RiderID())
	}
	if err != nil {
		return RiderLocationView{}, err
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return RiderLocationView{}, err
	}
	var correlated *kernel.UUID
	if orderID != nil {
		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return RiderLocationView{}, idErr
		}
		correlated = &id
	}

	loc, err := rider.NewLocation(query.RiderID(), point, time.Unix(0, nanos), correlated)
	if err != nil {
		return RiderLocationView{}, err
	}

	now := time.Now()
	return RiderLocationView{
		RiderID:    loc.RiderID(),
		Latitude:   loc.Point().Latitude(),
		Longitude:  loc.Point().Longitude(),
		RecordedAt: loc.RecordedAt(),
		OrderID:    loc.OrderID(),
		Age:        loc.Age(now),
		Stale:      loc.IsStale(now, h.staleAfter),
	}, nil
}
