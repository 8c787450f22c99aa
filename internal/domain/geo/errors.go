package geo

import "errors"

// Sentinel kinds for geo math errors.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
