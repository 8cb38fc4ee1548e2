package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Event is a lifecycle trigger submitted by an actor.
type Event int

const (
	EventUnknown Event = iota
	EventAccept
	EventReject
	EventCancel
	EventMarkReady
	EventAssign
	EventVerifyRiderPin
	EventVerifyCustomerPin
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventAccept:            "accept",
		EventReject:            "reject",
		EventCancel:            "cancel",
		EventMarkReady:         "mark_ready",
		EventAssign:            "assign",
		EventVerifyRiderPin:    "verify_rider_pin",
		EventVerifyCustomerPin: "verify_customer_pin",
	}
}

func ParseEvent(s string) (Event, error) {
	for event, str := range getEventStrings() {
		if str == s {
			return event, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a valid event", s))
}

func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}

// IsStatusEvent reports events applied through Order.Apply. Assignment and the
// two PIN handoffs have their own operations.
func (e Event) IsStatusEvent() bool {
	switch e {
	case EventAccept, EventReject, EventCancel, EventMarkReady:
		return true
	default:
		return false
	}
}
