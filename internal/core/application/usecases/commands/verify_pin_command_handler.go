package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
)

// VerifyPinCommandHandler runs a custody handoff. A wrong PIN is still a
// write: the attempt counter is committed before ErrInvalidPin is returned so
// that lockout survives retries from a fresh request.
type VerifyPinCommandHandler struct {
	uowFactory UoWFactory
	verifier   services.HandoffVerifier
	retryLimit int
}

func NewVerifyPinCommandHandler(uowFactory UoWFactory, maxAttempts, retryLimit int) VerifyPinCommandHandler {
	return VerifyPinCommandHandler{
		uowFactory: uowFactory,
		verifier:   services.NewHandoffVerifier(maxAttempts),
		retryLimit: retryLimit,
	}
}

func (h VerifyPinCommandHandler) Handle(ctx context.Context, cmd VerifyPinCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := retryOnConflict(h.retryLimit, func() error {
		o, err := h.verify(ctx, cmd)
		result = o
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h VerifyPinCommandHandler) verify(ctx context.Context, cmd VerifyPinCommand) (*order.Order, error) {
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

	var r *rider.Rider
	if cmd.Kind() == order.PinKindCustomer && o.HasRider() {
		r, err = riderRepo.Get(ctx, o.RiderID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	changed, verifyErr := h.verifier.Verify(cmd.Kind(), o, r, cmd.Actor(), cmd.PIN(), time.Now().UTC())
	if !changed {
		if verifyErr != nil {
			return nil, verifyErr
		}
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if r != nil && r.HasChanges() {
		if err = riderRepo.Update(ctx, r); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if verifyErr != nil {
		return nil, verifyErr
	}
	return o, nil
}
