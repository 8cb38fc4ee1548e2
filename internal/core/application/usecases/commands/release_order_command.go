package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrReleaseOrderCommandIsNotConstructed = errors.New(
	"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
)

// ReleaseOrderCommand is the assigned rider dropping an order before pickup.
type ReleaseOrderCommand struct {
	actor   order.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseOrderCommand(actor order.Actor, orderID kernel.UUID) (ReleaseOrderCommand, error) {
	if err := errors.Join(validateActor(actor), orderID.Validate()); err != nil {
		return ReleaseOrderCommand{}, err
	}

	return ReleaseOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

func (c ReleaseOrderCommand) Actor() order.Actor   { return c.actor }
func (c ReleaseOrderCommand) OrderID() kernel.UUID { return c.orderID }
