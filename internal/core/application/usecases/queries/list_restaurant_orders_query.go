package queries

import (
	"errors"
	"slices"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrListRestaurantOrdersQueryIsNotConstructed = errors.New(
	"ListRestaurantOrdersQuery must be created via NewListRestaurantOrdersQuery constructor",
)

// ListRestaurantOrdersQuery lists a restaurant's orders, optionally narrowed to
// a set of statuses. An empty set means every status.
type ListRestaurantOrdersQuery struct {
	actor        order.Actor
	restaurantID string
	statuses     []order.Status

	guard guard.ConstructorGuard
}

func NewListRestaurantOrdersQuery(
	actor order.Actor,
	restaurantID string,
	statuses []order.Status,
) (ListRestaurantOrdersQuery, error) {
	if err := newScopedQuery(actor, restaurantID, "restaurant_id"); err != nil {
		return ListRestaurantOrdersQuery{}, err
	}

	filter := make([]order.Status, 0, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListRestaurantOrdersQuery{}, err
		}
		if !slices.Contains(filter, s) {
			filter = append(filter, s)
		}
	}

	return ListRestaurantOrdersQuery{
		actor:        actor,
		restaurantID: restaurantID,
		statuses:     filter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantOrdersQueryIsNotConstructed)
}

func (q ListRestaurantOrdersQuery) Actor() order.Actor       { return q.actor }
func (q ListRestaurantOrdersQuery) RestaurantID() string     { return q.restaurantID }
func (q ListRestaurantOrdersQuery) Statuses() []order.Status { return slices.Clone(q.statuses) }
