package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrGetRiderLocationQueryIsNotConstructed = errors.New(
	"GetRiderLocationQuery must be created via NewGetRiderLocationQuery constructor",
)

// GetRiderLocationQuery reads a rider's last reported position. Any
// authenticated actor may ask.
type GetRiderLocationQuery struct {
	actor   order.Actor
	riderID string

	guard guard.ConstructorGuard
}

func NewGetRiderLocationQuery(actor order.Actor, riderID string) (GetRiderLocationQuery, error) {
	if err := newScopedQuery(actor, riderID, "rider_id"); err != nil {
		return GetRiderLocationQuery{}, err
	}

	return GetRiderLocationQuery{
		actor:   actor,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetRiderLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderLocationQueryIsNotConstructed)
}

func (q GetRiderLocationQuery) Actor() order.Actor { return q.actor }
func (q GetRiderLocationQuery) RiderID() string    { return q.riderID }

// RiderLocationView is the position slot plus how old it is at read time.
type RiderLocationView struct {
	RiderID    string
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
	OrderID    *kernel.UUID
	Age        time.Duration
	Stale      bool
}
