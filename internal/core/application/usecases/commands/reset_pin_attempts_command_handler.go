package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

type ResetPinAttemptsCommandHandler struct {
	uowFactory OrderUoWFactory
	retryLimit int
}

func NewResetPinAttemptsCommandHandler(uowFactory OrderUoWFactory, retryLimit int) ResetPinAttemptsCommandHandler {
	return ResetPinAttemptsCommandHandler{
		uowFactory: uowFactory,
		retryLimit: retryLimit,
	}
}

// Handle clears the attempt counter. Only operators may reset.
func (h ResetPinAttemptsCommandHandler) Handle(ctx context.Context, cmd ResetPinAttemptsCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := retryOnConflict(h.retryLimit, func() error {
		o, err := h.reset(ctx, cmd)
		result = o
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h ResetPinAttemptsCommandHandler) reset(ctx context.Context, cmd ResetPinAttemptsCommand) (*order.Order, error) {
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

	changed, err := o.ResetPinAttempts(cmd.Kind(), cmd.Actor(), time.Now().UTC())
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
