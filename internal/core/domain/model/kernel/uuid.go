package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID and for
// the nil UUID parsed from external input.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders and domain events. It wraps google/uuid so the
// domain never handles the nil UUID: the zero value is invalid and every
// constructor rejects uuid.Nil.
//
// UUID is an immutable value and safe to copy and share between goroutines.
//
// Example usage:
//
//	id := kernel.NewUUID()
//
//	parsed, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return err
//	}
//	if parsed.IsEqual(id) {
//	    // same order
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID. New orders and domain events
// get their identifiers here.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	fmt.Println(orderID) // e.g. "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by google/uuid:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// A malformed string yields a ValueIsInvalid error. The nil UUID is rejected
// with ErrUUIDIsNotConstructed so that a path parameter of all zeroes never
// reaches a repository lookup.
//
// Example:
//
//	id, err := kernel.UUIDFromString(row.OrderID)
//	if err != nil {
//	    return fmt.Errorf("order_events row: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as produced by
// uuid.UUID or the oapi-codegen parameter binder. Any other length is a
// ValueIsInvalid error and the nil UUID is rejected like in UUIDFromString.
//
// Example:
//
//	var raw uuid.UUID // bound from the request path
//	id, err := kernel.UUIDFromBytes(raw[:])
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical lowercase hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped uuid.UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
