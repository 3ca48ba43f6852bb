package domain

import "fmt"

// Hemisphere is the half of the globe a UTM zone belongs to.
type Hemisphere string

// Hemisphere constants; the letter doubles as the label suffix.
const (
	HemisphereNorth Hemisphere = "N"
	HemisphereSouth Hemisphere = "S"
)

// WGS84/UTM EPSG numbering bases: 326xx north, 327xx south.
const (
	epsgUTMNorthBase = 32600
	epsgUTMSouthBase = 32700
)

// UTMZone identifies one UTM longitude zone and hemisphere.
type UTMZone struct {
	Number     int
	Hemisphere Hemisphere
}

// ResolveUTM derives the UTM zone for a coordinate in decimal degrees.
// It is a pure function of its inputs: identical arguments always produce
// identical zones.
//
// The zone number is int((lon+180)/6) + 1 with Go's truncating float-to-int
// conversion. Truncation and floor agree as long as lon+180 is non-negative,
// which holds on the whole valid longitude domain; outside [-180, 180) the
// formula is applied unchanged, so the number can fall outside [1, 60]
// (lon = 180 yields 61). No clamping or wraparound is applied.
//
// Latitude only selects the hemisphere: north for lat >= 0 (the equator
// resolves north), south otherwise.
func ResolveUTM(lat, lon float64) UTMZone {
	zone := UTMZone{Number: int((lon+180)/6) + 1, Hemisphere: HemisphereNorth}
	if lat < 0 {
		zone.Hemisphere = HemisphereSouth
	}
	return zone
}

// EPSG returns the WGS84/UTM EPSG code for the zone.
func (z UTMZone) EPSG() int {
	if z.Hemisphere == HemisphereSouth {
		return epsgUTMSouthBase + z.Number
	}
	return epsgUTMNorthBase + z.Number
}

// String returns the zone label, e.g. "43N". The number keeps its natural
// integer formatting (no zero padding).
func (z UTMZone) String() string {
	return fmt.Sprintf("%d%s", z.Number, z.Hemisphere)
}
