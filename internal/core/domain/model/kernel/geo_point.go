package kernel

import (
	"errors"
	"fmt"
	"math"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// Coordinate bounds in degrees, inclusive.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	earthRadiusKm = 6371.0088
)

// ErrGeoPointIsNotConstructed is returned when a zero GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("point must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate in degrees. Delivery addresses and rider
// positions both use it. It is an immutable value and the zero value is
// invalid.
//
// Example:
//
//	restaurant, err := kernel.NewGeoPoint(23.7806, 90.4070)
//	if err != nil {
//	    // latitude or longitude out of range
//	}
//	customer, _ := kernel.NewGeoPoint(23.7461, 90.3742)
//	km, _ := restaurant.DistanceKm(customer) // about 5.1
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint builds a point from degrees.
//
// Parameters:
//   - latitude: between MinLatitude and MaxLatitude inclusive
//   - longitude: between MinLongitude and MaxLongitude inclusive
//
// Out-of-range or NaN values yield ValueIsOutOfRange errors. When both are
// wrong the errors are joined so the caller sees every problem at once.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate returns ErrGeoPointIsNotConstructed for a zero GeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// DistanceKm returns the great-circle distance in kilometres using the
// haversine formula on a spherical earth with the mean radius. The error is
// ErrGeoPointIsNotConstructed when either point is a zero value.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	const degToRad = math.Pi / 180
	dLat := (other.latitude - p.latitude) * degToRad
	dLng := (other.longitude - p.longitude) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p.latitude*degToRad)*math.Cos(other.latitude*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c, nil
}

func (p *GeoPoint) setLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}
	p.latitude = lat
	return nil
}

func (p *GeoPoint) setLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}
	p.longitude = lng
	return nil
}
