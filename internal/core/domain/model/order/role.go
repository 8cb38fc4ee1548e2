package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleRider      Role = "rider"
	RoleOperator   Role = "operator"
	RoleSystem     Role = "system"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleRider, RoleOperator, RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller: an opaque identity plus its role.
type Actor struct {
	ID   string
	Role Role
}

func NewActor(id string, role Role) (Actor, error) {
	var idErr error
	if id == "" {
		idErr = errs.NewValueIsRequiredError("actor id")
	}
	if err := errors.Join(idErr, role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// SystemActor is used by scheduled jobs.
func SystemActor(component string) Actor {
	return Actor{ID: component, Role: RoleSystem}
}
