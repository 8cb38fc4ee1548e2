package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// guarded value is a zero value and the caller passed no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. The zero value
// is "not constructed", so a struct that embeds a guard can tell an instance
// returned by its constructor from a struct literal or a zero value.
//
// Value objects and aggregates in this module embed a guard and expose a
// Validate method that delegates to it. Repositories and use cases call
// Validate before trusting an argument.
//
// Example usage:
//
//	var ErrChargeIsNotConstructed = errors.New("Charge must be created via NewCharge")
//
//	type Charge struct {
//	    amount int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewCharge(amount int64) (Charge, error) {
//	    if amount < 0 {
//	        return Charge{}, errors.New("amount cannot be negative")
//	    }
//	    return Charge{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Charge) Validate() error {
//	    return c.guard.Validate(ErrChargeIsNotConstructed)
//	}
//
// Charge{} then fails Validate with ErrChargeIsNotConstructed, while any
// value returned by NewCharge passes.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it only
// from the constructor of the type that embeds the guard, after every
// invariant has been checked.
//
// Example:
//
//	func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
//	    p := GeoPoint{guard: guard.NewConstructorGuard()}
//	    // set and check fields...
//	    return p, nil
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate reports whether the guarded value came from its constructor.
//
// For a constructed guard it returns nil. For a zero-value guard it returns
// err, or ErrDefaultConstructorGuard when err is nil.
//
// Parameters:
//   - err: the error describing the unconstructed type, usually a package
//     level sentinel such as kernel.ErrGeoPointIsNotConstructed
//
// Example:
//
//	func (o *Order) Validate() error {
//	    return o.guard.Validate(ErrOrderIsNotConstructed)
//	}
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
