package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrVerifyPinCommandIsNotConstructed = errors.New(
	"VerifyPinCommand must be created via NewVerifyPinCommand constructor",
)

// VerifyPinCommand submits a handoff code. Kind rider is the pickup at the
// restaurant; kind customer is the delivery at the door.
type VerifyPinCommand struct {
	actor   order.Actor
	orderID kernel.UUID
	kind    order.PinKind
	pin     string

	guard guard.ConstructorGuard
}

func NewVerifyPinCommand(actor order.Actor, orderID kernel.UUID, kind order.PinKind, pin string) (VerifyPinCommand, error) {
	var kindErr error
	if kind != order.PinKindRider && kind != order.PinKindCustomer {
		kindErr = errs.NewValueIsInvalidError("kind")
	}

	if err := errors.Join(
		validateActor(actor),
		orderID.Validate(),
		kindErr,
		kernel.ValidatePINFormat(pin),
	); err != nil {
		return VerifyPinCommand{}, err
	}

	return VerifyPinCommand{
		actor:   actor,
		orderID: orderID,
		kind:    kind,
		pin:     pin,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyPinCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPinCommandIsNotConstructed)
}

func (c VerifyPinCommand) Actor() order.Actor   { return c.actor }
func (c VerifyPinCommand) OrderID() kernel.UUID { return c.orderID }
func (c VerifyPinCommand) Kind() order.PinKind  { return c.kind }
func (c VerifyPinCommand) PIN() string          { return c.pin }
