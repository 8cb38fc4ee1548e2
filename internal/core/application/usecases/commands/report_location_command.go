package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand is a position fix sent by the rider app. The
// timestamp is the device's, not the server's.
type ReportLocationCommand struct {
	actor    order.Actor
	location rider.Location

	guard guard.ConstructorGuard
}

func NewReportLocationCommand(
	actor order.Actor,
	riderID string,
	point kernel.GeoPoint,
	recordedAt time.Time,
	orderID *kernel.UUID,
) (ReportLocationCommand, error) {
	loc, err := rider.NewLocation(riderID, point, recordedAt, orderID)
	if err = errors.Join(validateActor(actor), err); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		actor:    actor,
		location: loc,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

func (c ReportLocationCommand) Actor() order.Actor       { return c.actor }
func (c ReportLocationCommand) Location() rider.Location { return c.location }
