package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
)

// SetRiderAvailabilityCommandHandler toggles a rider online or offline. The
// first call for an unknown rider registers it with the default capacity.
// Going offline keeps custody of held orders.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory      RiderUoWFactory
	defaultCapacity int
	retryLimit      int
}

func NewSetRiderAvailabilityCommandHandler(
	uowFactory RiderUoWFactory,
	defaultCapacity int,
	retryLimit int,
) SetRiderAvailabilityCommandHandler {
	if defaultCapacity < rider.MinCapacity {
		defaultCapacity = rider.MinCapacity
	}
	return SetRiderAvailabilityCommandHandler{
		uowFactory:      uowFactory,
		defaultCapacity: defaultCapacity,
		retryLimit:      retryLimit,
	}
}

func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireSelfOrOperator(cmd.Actor(), cmd.RiderID(), "change another rider's availability"); err != nil {
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

func (h SetRiderAvailabilityCommandHandler) set(ctx context.Context, cmd SetRiderAvailabilityCommand) (*rider.Rider, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()

	isNew := false
	r, err := riderRepo.Get(ctx, cmd.RiderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		isNew = true
		r, err = rider.NewRider(cmd.RiderID(), h.defaultCapacity)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Online() {
		r.GoOnline(time.Now().UTC())
	} else {
		r.GoOffline()
	}
	if !r.HasChanges() {
		return r, nil
	}

	if isNew {
		err = riderRepo.Add(ctx, r)
	} else {
		err = riderRepo.Update(ctx, r)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
