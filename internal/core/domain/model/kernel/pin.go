package kernel

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"orderflow/internal/pkg/errs"
)

// PINLength is the number of decimal digits in a handoff PIN.
const PINLength = 4

var pinSpace = big.NewInt(10000)

// PIN is a four digit handoff code shared out of band between the parties
// of a custody transfer. Leading zeroes are significant, so "0042" and "42"
// are different codes and only the former is valid.
//
// Each order carries two PINs: the rider PIN, which the restaurant checks at
// pickup, and the customer PIN, which the rider checks at the door.
//
// Example usage:
//
//	pin, err := kernel.GeneratePIN()
//	if err != nil {
//	    return err
//	}
//	if pin.Matches(submitted) {
//	    // hand the order over
//	}
type PIN struct {
	value string
}

// NewPIN wraps an existing code, typically one restored from storage. value
// must pass ValidatePINFormat.
func NewPIN(value string) (PIN, error) {
	if err := ValidatePINFormat(value); err != nil {
		return PIN{}, err
	}
	return PIN{value: value}, nil
}

// GeneratePIN draws uniformly from 0000-9999 using crypto/rand. It only
// fails when the system randomness source does.
func GeneratePIN() (PIN, error) {
	n, err := rand.Int(rand.Reader, pinSpace)
	if err != nil {
		return PIN{}, fmt.Errorf("generate pin: %w", err)
	}
	return PIN{value: fmt.Sprintf("%04d", n.Int64())}, nil
}

// ValidatePINFormat checks that value is exactly PINLength ASCII digits.
// An empty value is a ValueIsRequired error; anything else malformed is
// ValueIsInvalid.
//
// Example:
//
//	kernel.ValidatePINFormat("4821") // nil
//	kernel.ValidatePINFormat("48a1") // value is invalid: pin
func ValidatePINFormat(value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError("pin")
	}
	if len(value) != PINLength {
		return errs.NewValueIsInvalidErrorWithCause("pin", fmt.Errorf("must be %d digits", PINLength))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pin", fmt.Errorf("must be %d digits", PINLength))
		}
	}
	return nil
}

// Matches compares submitted against the code in constant time over the
// full code. A submission of the wrong length never matches.
func (p PIN) Matches(submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(p.value), []byte(submitted)) == 1
}

func (p PIN) String() string {
	return p.value
}

// IsZero reports whether p is the zero PIN, for example a redacted one.
func (p PIN) IsZero() bool {
	return p.value == ""
}
