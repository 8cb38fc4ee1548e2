package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

type Address struct {
	street string
	city   string
	state  string
	zip    string
	point  kernel.GeoPoint
}

// NewAddress requires street, city and a constructed point. State and zip are
// optional since not every market uses them.
func NewAddress(street, city, state, zip string, point kernel.GeoPoint) (Address, error) {
	var streetErr, cityErr error
	if street == "" {
		streetErr = errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		cityErr = errs.NewValueIsRequiredError("city")
	}
	if err := errors.Join(streetErr, cityErr, point.Validate()); err != nil {
		return Address{}, err
	}

	return Address{street: street, city: city, state: state, zip: zip, point: point}, nil
}

func (a Address) Street() string         { return a.street }
func (a Address) City() string           { return a.city }
func (a Address) State() string          { return a.state }
func (a Address) Zip() string            { return a.zip }
func (a Address) Point() kernel.GeoPoint { return a.point }
