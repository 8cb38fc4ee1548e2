package rider

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// MaxClockSkew bounds how far ahead of the server clock a device timestamp
// may be. A fix further in the future would win every later comparison.
const MaxClockSkew = 30 * time.Second

// Location is the single last-known position slot of a rider.
type Location struct { //nolint:recvcheck //using for validation
	riderID    string
	point      kernel.GeoPoint
	recordedAt time.Time
	orderID    *kernel.UUID
	guard      guard.ConstructorGuard
}

func NewLocation(riderID string, point kernel.GeoPoint, recordedAt time.Time, orderID *kernel.UUID) (Location, error) {
	l := Location{guard: guard.NewConstructorGuard()}

	var riderErr, timeErr, orderErr error
	if riderID == "" {
		riderErr = errs.NewValueIsRequiredError("rider_id")
	}
	if recordedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("timestamp")
	}
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	if err := errors.Join(riderErr, point.Validate(), timeErr, orderErr); err != nil {
		return Location{}, err
	}

	l.riderID = riderID
	l.point = point
	l.recordedAt = recordedAt.UTC()
	if orderID != nil {
		id := *orderID
		l.orderID = &id
	}
	return l, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) RiderID() string        { return l.riderID }
func (l Location) Point() kernel.GeoPoint { return l.point }
func (l Location) RecordedAt() time.Time  { return l.recordedAt }
func (l Location) OrderID() *kernel.UUID  { return l.orderID }

// Age is never negative; a clock-skewed future timestamp reads as fresh.
func (l Location) Age(now time.Time) time.Duration {
	age := now.Sub(l.recordedAt)
	if age < 0 {
		return 0
	}
	return age
}

func (l Location) IsStale(now time.Time, after time.Duration) bool {
	return after > 0 && l.Age(now) > after
}

// CheckClock rejects a fix stamped more than maxSkew after now.
func (l Location) CheckClock(now time.Time, maxSkew time.Duration) error {
	latest := now.Add(maxSkew)
	if l.recordedAt.After(latest) {
		return errs.NewValueIsOutOfRangeError("timestamp", l.recordedAt, time.Time{}, latest)
	}
	return nil
}

// Supersedes reports whether l may overwrite prev: only strictly newer
// readings win.
func (l Location) Supersedes(prev Location) bool {
	return l.recordedAt.After(prev.recordedAt)
}
