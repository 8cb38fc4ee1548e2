package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

type ListCustomerOrdersQuery struct {
	actor      order.Actor
	customerID string

	guard guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(actor order.Actor, customerID string) (ListCustomerOrdersQuery, error) {
	if err := newScopedQuery(actor, customerID, "customer_id"); err != nil {
		return ListCustomerOrdersQuery{}, err
	}

	return ListCustomerOrdersQuery{
		actor:      actor,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) Actor() order.Actor { return q.actor }
func (q ListCustomerOrdersQuery) CustomerID() string { return q.customerID }
