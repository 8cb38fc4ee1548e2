package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies a status event through the order's
// transition table. Replays of an already applied event return the current
// order without writing.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	retryLimit int
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, retryLimit int) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		retryLimit: retryLimit,
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := retryOnConflict(h.retryLimit, func() error {
		o, err := h.apply(ctx, cmd)
		result = o
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h ChangeOrderStatusCommandHandler) apply(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	changed, err := o.Apply(cmd.Actor(), cmd.Event(), cmd.Reason(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
