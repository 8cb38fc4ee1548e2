package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
)

// SetRiderCapacityCommandHandler lets an operator change how many orders a
// rider may hold at once. Capacity cannot drop below the orders already held.
type SetRiderCapacityCommandHandler struct {
	uowFactory RiderUoWFactory
	retryLimit int
}

func NewSetRiderCapacityCommandHandler(uowFactory RiderUoWFactory, retryLimit int) SetRiderCapacityCommandHandler {
	return SetRiderCapacityCommandHandler{
		uowFactory: uowFactory,
		retryLimit: retryLimit,
	}
}

func (h SetRiderCapacityCommandHandler) Handle(ctx context.Context, cmd SetRiderCapacityCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(cmd.Actor(), "change rider capacity", order.RoleOperator); err != nil {
		return nil, err
	}

	var result *rider.Rider
	err := retryOnConflict(h.retryLimit, func() error {
		r, err := h.set(ctx, cmd)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h SetRiderCapacityCommandHandler) set(ctx context.Context, cmd SetRiderCapacityCommand) (*rider.Rider, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()

	r, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return nil, err
	}

	if err = r.SetCapacity(cmd.Capacity()); err != nil {
		return nil, err
	}
	if !r.HasChanges() {
		return r, nil
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
