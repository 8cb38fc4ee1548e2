package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand carries one of the restaurant/customer status
// events: accept, reject, cancel or mark_ready.
type ChangeOrderStatusCommand struct {
	actor   order.Actor
	orderID kernel.UUID
	event   order.Event
	reason  string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	actor order.Actor,
	orderID kernel.UUID,
	event order.Event,
	reason string,
) (ChangeOrderStatusCommand, error) {
	var eventErr error
	if !event.IsStatusEvent() {
		eventErr = errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a status event", event))
	}

	if err := errors.Join(validateActor(actor), orderID.Validate(), eventErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		event:   event,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() order.Actor   { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Event() order.Event   { return c.event }
func (c ChangeOrderStatusCommand) Reason() string       { return c.reason }
