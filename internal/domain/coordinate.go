package domain

import "github.com/golang/geo/s2"

// Immutable geographic coordinates in decimal degrees (latitude, longitude).
//
// The degree values are used exactly as supplied: nothing clamps or wraps
// them, so out-of-range input flows through the zone arithmetic unchanged.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Return the coordinate as an s2 geodetic point for spherical-geometry callers.
func (c Coordinate) LatLng() s2.LatLng { return s2.LatLngFromDegrees(c.Lat, c.Lon) }

// InRange reports whether the coordinate lies inside the standard
// latitude ±90 / longitude ±180 degree domain. Advisory only: resolution
// never requires it.
func (c Coordinate) InRange() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// IsOrigin reports the exact equator/prime-meridian point (0, 0).
// Interactive callers treat it as the "no input provided" sentinel;
// the resolver itself computes a normal answer for it.
func (c Coordinate) IsOrigin() bool { return c.Lat == 0 && c.Lon == 0 }
