package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// AcceptOrderCommandHandler runs the assignment compare-and-set. The order and
// rider rows are both written with a version check in one transaction, so of
// several riders racing for the same order exactly one commits. The others
// hit a version conflict, reload, and see ErrAlreadyAssigned.
type AcceptOrderCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
	retryLimit  int
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory, retryLimit int) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
		retryLimit:  retryLimit,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(cmd.Actor(), "accept an order", order.RoleRider); err != nil {
		return nil, err
	}

	var result *order.Order
	err := retryOnConflict(h.retryLimit, func() error {
		o, err := h.accept(ctx, cmd)
		result = o
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h AcceptOrderCommandHandler) accept(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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

	r, err := getRegisteredRider(ctx, riderRepo, cmd.Actor().ID)
	if err != nil {
		return nil, err
	}

	changed, err := h.coordinator.Accept(o, r, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// getRegisteredRider treats an unknown rider as offline: riders are registered
// the first time they go online.
func getRegisteredRider(ctx context.Context, repo ports.RiderRepository, id string) (*rider.Rider, error) {
	r, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: rider %s has never gone online", errs.ErrRiderOffline, id)
	}
	return r, err
}
