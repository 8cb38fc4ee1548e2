package services

import (
	"errors"
	"slices"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
)

// AssignmentCoordinator binds ready orders to riders. It only decides; the
// caller persists both aggregates in one transaction with version checks so
// that racing claims have a single winner.
type AssignmentCoordinator struct{}

func NewAssignmentCoordinator() AssignmentCoordinator {
	return AssignmentCoordinator{}
}

// Accept claims o for r. It returns false without error when r already holds o.
func (c AssignmentCoordinator) Accept(o *order.Order, r *rider.Rider, now time.Time) (bool, error) {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return false, err
	}

	if o.HasRider() && o.RiderID() != r.ID() {
		return false, errs.ErrAlreadyAssigned
	}
	if err := r.CanTakeOrder(o.ID()); err != nil {
		return false, err
	}

	assigned, err := o.AssignRider(r.ID(), now)
	if err != nil {
		return false, err
	}

	held := r.HasOrder(o.ID())
	if err = r.TakeOrder(o.ID()); err != nil {
		return false, err
	}

	return assigned || !held, nil
}

// Drop releases r's claim on o and frees the slot. The order goes back to
// the available pool with its status untouched.
func (c AssignmentCoordinator) Drop(o *order.Order, r *rider.Rider, now time.Time) (bool, error) {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return false, err
	}

	released, err := o.ReleaseRider(r.ID(), now)
	if err != nil {
		return false, err
	}

	freed := r.ReleaseOrder(o.ID())
	return released || freed, nil
}

// Ranked is a candidate position after distance filtering.
type Ranked struct {
	Index      int
	DistanceKm float64
}

// RankByDistance keeps the points within radiusKm of origin, nearest first.
// A non-positive radius keeps everything.
func (c AssignmentCoordinator) RankByDistance(origin kernel.GeoPoint, points []kernel.GeoPoint, radiusKm float64) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(points))
	for i, p := range points {
		d, err := origin.DistanceKm(p)
		if err != nil {
			return nil, err
		}
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		ranked = append(ranked, Ranked{Index: i, DistanceKm: d})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})
	return ranked, nil
}
