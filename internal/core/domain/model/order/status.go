package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status is the lifecycle position of an order. The set is closed; the
// transition table in transitions.go is the only way between values.
type Status int

const (
	Unknown Status = iota
	Pending
	Preparing
	ReadyForPickup
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:        "pending",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

func AllStatuses() []Status {
	return []Status{Pending, Preparing, ReadyForPickup, OutForDelivery, Delivered, Cancelled}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports delivered and cancelled. Orders in a terminal status are
// retained for history and never change again.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
