package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery is the pickup pool as seen by one rider.
type ListAvailableOrdersQuery struct {
	actor   order.Actor
	riderID string

	guard guard.ConstructorGuard
}

func NewListAvailableOrdersQuery(actor order.Actor, riderID string) (ListAvailableOrdersQuery, error) {
	if err := newScopedQuery(actor, riderID, "rider_id"); err != nil {
		return ListAvailableOrdersQuery{}, err
	}

	return ListAvailableOrdersQuery{
		actor:   actor,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) Actor() order.Actor { return q.actor }
func (q ListAvailableOrdersQuery) RiderID() string    { return q.riderID }
