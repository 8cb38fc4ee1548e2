package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

type SetRiderAvailabilityCommand struct {
	actor   order.Actor
	riderID string
	online  bool

	guard guard.ConstructorGuard
}

func NewSetRiderAvailabilityCommand(actor order.Actor, riderID string, online bool) (SetRiderAvailabilityCommand, error) {
	var idErr error
	if riderID == "" {
		idErr = errs.NewValueIsRequiredError("rider_id")
	}
	if err := errors.Join(validateActor(actor), idErr); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}

	return SetRiderAvailabilityCommand{
		actor:   actor,
		riderID: riderID,
		online:  online,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

func (c SetRiderAvailabilityCommand) Actor() order.Actor { return c.actor }
func (c SetRiderAvailabilityCommand) RiderID() string    { return c.riderID }
func (c SetRiderAvailabilityCommand) Online() bool       { return c.online }
