// Package geo provides great-circle math used by the recommendation pipeline.
package geo

import (
	"fmt"
	"math"

	"github.com/voyago/voyago/internal/domain/model"
)

const (
	earthRadiusKm = 6371.0
	degToRad      = math.Pi / 180.0
	radToDeg      = 180.0 / math.Pi
)

// validate checks a coordinate is inside the valid lat/lng ranges.
func validate(c model.Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: lat=%.6f lng=%.6f", ErrInvalidCoordinate, c.Lat, c.Lng)
	}
	return nil
}

// DistanceKm returns the haversine great-circle distance between a and b in
// kilometers. It is symmetric and zero iff the coordinates are equal.
func DistanceKm(a, b model.Coordinate) (float64, error) {
	if err := validate(a); err != nil {
		return 0, err
	}
	if err := validate(b); err != nil {
		return 0, err
	}

	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLat := (b.Lat - a.Lat) * degToRad
	dLng := (b.Lng - a.Lng) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c, nil
}

// BearingDeg returns the initial compass bearing from a to b in [0,360).
// The result is undefined when a and b coincide; callers must not ask for a
// bearing between equal coordinates.
func BearingDeg(a, b model.Coordinate) (float64, error) {
	if err := validate(a); err != nil {
		return 0, err
	}
	if err := validate(b); err != nil {
		return 0, err
	}

	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLng := (b.Lng - a.Lng) * degToRad

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	deg := math.Atan2(y, x) * radToDeg
	return math.Mod(deg+360, 360), nil
}
