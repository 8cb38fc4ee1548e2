package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAlreadyAssigned   = errors.New("order already assigned")
	ErrCapacityExceeded  = errors.New("rider capacity exceeded")
	ErrInvalidPin        = errors.New("invalid pin")
	ErrPinLocked         = errors.New("pin verification locked")
	ErrRiderOffline      = errors.New("rider is offline")
)

// InvalidTransitionError is returned when an event is not legal from the
// order's current status.
type InvalidTransitionError struct {
	From  string
	Event string
}

func NewInvalidTransitionError(from, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type UnauthorizedError struct {
	Role   string
	Action string
}

func NewUnauthorizedError(role, action string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Action: action}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrUnauthorized, e.Role, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidPinError carries which PIN failed and how many attempts remain
// before the order locks.
type InvalidPinError struct {
	Kind         string
	AttemptsLeft int
}

func NewInvalidPinError(kind string, attemptsLeft int) *InvalidPinError {
	return &InvalidPinError{Kind: kind, AttemptsLeft: attemptsLeft}
}

func (e *InvalidPinError) Error() string {
	return fmt.Sprintf("%s: %s pin mismatch, %d attempts left", ErrInvalidPin, e.Kind, e.AttemptsLeft)
}

func (e *InvalidPinError) Unwrap() error {
	return ErrInvalidPin
}
