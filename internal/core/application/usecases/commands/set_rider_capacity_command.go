package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSetRiderCapacityCommandIsNotConstructed = errors.New(
	"SetRiderCapacityCommand must be created via NewSetRiderCapacityCommand constructor",
)

type SetRiderCapacityCommand struct {
	actor    order.Actor
	riderID  string
	capacity int

	guard guard.ConstructorGuard
}

func NewSetRiderCapacityCommand(actor order.Actor, riderID string, capacity int) (SetRiderCapacityCommand, error) {
	var idErr, capacityErr error
	if riderID == "" {
		idErr = errs.NewValueIsRequiredError("rider_id")
	}
	if capacity < rider.MinCapacity || capacity > rider.MaxCapacity {
		capacityErr = errs.NewValueIsOutOfRangeError("capacity", capacity, rider.MinCapacity, rider.MaxCapacity)
	}
	if err := errors.Join(validateActor(actor), idErr, capacityErr); err != nil {
		return SetRiderCapacityCommand{}, err
	}

	return SetRiderCapacityCommand{
		actor:    actor,
		riderID:  riderID,
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetRiderCapacityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderCapacityCommandIsNotConstructed)
}

func (c SetRiderCapacityCommand) Actor() order.Actor { return c.actor }
func (c SetRiderCapacityCommand) RiderID() string    { return c.riderID }
func (c SetRiderCapacityCommand) Capacity() int      { return c.capacity }
