package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a rider claiming a ready order.
//
// Example:
//
//	cmd, _ := NewAcceptOrderCommand(riderActor, orderID)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyAssigned):
//	    // another rider won
//	case errors.Is(err, errs.ErrCapacityExceeded):
//	    // rider must finish a delivery first
//	}
type AcceptOrderCommand struct {
	actor   order.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(actor order.Actor, orderID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(validateActor(actor), orderID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) Actor() order.Actor   { return c.actor }
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }
