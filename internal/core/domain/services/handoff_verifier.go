package services

import (
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
)

const DefaultPinMaxAttempts = 5

// HandoffVerifier gates the two custody transfers. Pickup moves the order to
// out_for_delivery; delivery moves it to delivered and frees the rider slot.
type HandoffVerifier struct {
	maxAttempts int
}

func NewHandoffVerifier(maxAttempts int) HandoffVerifier {
	if maxAttempts < 1 {
		maxAttempts = DefaultPinMaxAttempts
	}
	return HandoffVerifier{maxAttempts: maxAttempts}
}

func (v HandoffVerifier) MaxAttempts() int {
	return v.maxAttempts
}

// VerifyPickup checks the rider PIN submitted by the restaurant.
func (v HandoffVerifier) VerifyPickup(o *order.Order, actor order.Actor, pin string, now time.Time) (bool, error) {
	return o.VerifyPin(order.PinKindRider, actor, pin, v.maxAttempts, now)
}

// VerifyDelivery checks the customer PIN submitted by the assigned rider.
// On success r no longer holds the order. r may be nil when the rider record
// is gone; the order still completes.
func (v HandoffVerifier) VerifyDelivery(
	o *order.Order,
	r *rider.Rider,
	actor order.Actor,
	pin string,
	now time.Time,
) (bool, error) {
	if r != nil && r.ID() != o.RiderID() {
		return false, errs.NewUnauthorizedError(actor.Role.String(), "complete an order held by another rider")
	}

	changed, err := o.VerifyPin(order.PinKindCustomer, actor, pin, v.maxAttempts, now)
	if err != nil {
		return changed, err
	}

	freed := false
	if o.Status() == order.Delivered && r != nil {
		freed = r.ReleaseOrder(o.ID())
	}
	return changed || freed, nil
}

// Verify dispatches on kind.
func (v HandoffVerifier) Verify(
	kind order.PinKind,
	o *order.Order,
	r *rider.Rider,
	actor order.Actor,
	pin string,
	now time.Time,
) (bool, error) {
	switch kind {
	case order.PinKindRider:
		return v.VerifyPickup(o, actor, pin, now)
	case order.PinKindCustomer:
		return v.VerifyDelivery(o, r, actor, pin, now)
	default:
		return false, errs.NewValueIsInvalidError("kind")
	}
}
