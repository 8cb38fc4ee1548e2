package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrListRiderOrdersQueryIsNotConstructed = errors.New(
	"ListRiderOrdersQuery must be created via NewListRiderOrdersQuery constructor",
)

// ListRiderOrdersQuery lists the active orders a rider holds.
type ListRiderOrdersQuery struct {
	actor   order.Actor
	riderID string

	guard guard.ConstructorGuard
}

func NewListRiderOrdersQuery(actor order.Actor, riderID string) (ListRiderOrdersQuery, error) {
	if err := newScopedQuery(actor, riderID, "rider_id"); err != nil {
		return ListRiderOrdersQuery{}, err
	}

	return ListRiderOrdersQuery{
		actor:   actor,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListRiderOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRiderOrdersQueryIsNotConstructed)
}

func (q ListRiderOrdersQuery) Actor() order.Actor { return q.actor }
func (q ListRiderOrdersQuery) RiderID() string    { return q.riderID }
