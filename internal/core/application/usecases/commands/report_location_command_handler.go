package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
)

// ReportLocationCommandHandler writes the rider's single location slot.
// Fixes older than the stored one are dropped without error; Handle reports
// whether the fix was applied. Fixes stamped beyond rider.MaxClockSkew in the
// future are rejected.
type ReportLocationCommandHandler struct {
	uowFactory LocationUoWFactory
}

func NewReportLocationCommandHandler(uowFactory LocationUoWFactory) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	actor := cmd.Actor()
	if actor.Role != order.RoleRider || actor.ID != cmd.Location().RiderID() {
		return false, errs.NewUnauthorizedError(actor.Role.String(), "report another rider's location")
	}
	if err := cmd.Location().CheckClock(time.Now().UTC(), rider.MaxClockSkew); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	applied, err := uow.LocationRepository().Upsert(ctx, cmd.Location())
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return applied, nil
}
