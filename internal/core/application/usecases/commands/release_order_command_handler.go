package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
)

// ReleaseOrderCommandHandler returns an order to the available pool and frees
// the rider's slot. Releasing an unassigned order is a no-op.
type ReleaseOrderCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
	retryLimit  int
}

func NewReleaseOrderCommandHandler(uowFactory UoWFactory, retryLimit int) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
		retryLimit:  retryLimit,
	}
}

func (h ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(cmd.Actor(), "release an order", order.RoleRider); err != nil {
		return nil, err
	}

	var result *order.Order
	err := retryOnConflict(h.retryLimit, func() error {
		o, err := h.release(ctx, cmd)
		result = o
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h ReleaseOrderCommandHandler) release(ctx context.Context, cmd ReleaseOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	riderRepo := uow.RiderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.HasRider() {
		return o, nil
	}
	if o.RiderID() != cmd.Actor().ID {
		return nil, errs.NewUnauthorizedError(cmd.Actor().Role.String(), "release an order assigned to another rider")
	}

	r, err := riderRepo.Get(ctx, cmd.Actor().ID)
	if err != nil {
		return nil, err
	}

	changed, err := h.coordinator.Drop(o, r, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if o.HasChanges() {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if r.HasChanges() {
		if err = riderRepo.Update(ctx, r); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
