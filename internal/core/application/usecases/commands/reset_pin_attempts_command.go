package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrResetPinAttemptsCommandIsNotConstructed = errors.New(
	"ResetPinAttemptsCommand must be created via NewResetPinAttemptsCommand constructor",
)

// ResetPinAttemptsCommand unlocks a PIN after lockout.
type ResetPinAttemptsCommand struct {
	actor   order.Actor
	orderID kernel.UUID
	kind    order.PinKind

	guard guard.ConstructorGuard
}

func NewResetPinAttemptsCommand(actor order.Actor, orderID kernel.UUID, kind order.PinKind) (ResetPinAttemptsCommand, error) {
	var kindErr error
	if kind != order.PinKindRider && kind != order.PinKindCustomer {
		kindErr = errs.NewValueIsInvalidError("kind")
	}

	if err := errors.Join(validateActor(actor), orderID.Validate(), kindErr); err != nil {
		return ResetPinAttemptsCommand{}, err
	}

	return ResetPinAttemptsCommand{
		actor:   actor,
		orderID: orderID,
		kind:    kind,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResetPinAttemptsCommand) Validate() error {
	return c.guard.Validate(ErrResetPinAttemptsCommandIsNotConstructed)
}

func (c ResetPinAttemptsCommand) Actor() order.Actor   { return c.actor }
func (c ResetPinAttemptsCommand) OrderID() kernel.UUID { return c.orderID }
func (c ResetPinAttemptsCommand) Kind() order.PinKind  { return c.kind }
