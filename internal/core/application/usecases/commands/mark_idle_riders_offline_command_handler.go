package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
)

type MarkIdleRidersOfflineCommandHandler struct {
	uowFactory PresenceUoWFactory
}

func NewMarkIdleRidersOfflineCommandHandler(uowFactory PresenceUoWFactory) MarkIdleRidersOfflineCommandHandler {
	return MarkIdleRidersOfflineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of riders taken offline. A rider whose row
// changed concurrently is skipped until the next run.
func (h MarkIdleRidersOfflineCommandHandler) Handle(ctx context.Context, cmd MarkIdleRidersOfflineCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	locationRepo := uow.LocationRepository()
	now := time.Now().UTC()

	riders, err := riderRepo.ListOnline(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range riders {
		var lastSeen time.Time
		loc, locErr := locationRepo.Get(ctx, r.ID())
		switch {
		case locErr == nil:
			lastSeen = loc.RecordedAt()
		case !errors.Is(locErr, errs.ErrObjectNotFound):
			return 0, locErr
		}

		if !r.IsIdle(lastSeen, now, cmd.Timeout()) {
			continue
		}

		r.GoOffline()
		if err = riderRepo.Update(ctx, r); err != nil {
			if errors.Is(err, errs.ErrVersionIsInvalid) {
				continue
			}
			return 0, err
		}
		count++
	}

	if count == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return count, nil
}
