package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EPSG codes of the fixed (non-UTM) reference projections.
const (
	EPSGWGS84       = 4326
	EPSGWebMercator = 3857
	EPSGEqualEarth  = 8857
	EPSGWorldCEA    = 54034
)

// epsgIOBase is the fixed lookup URL prefix for EPSG identifiers.
const epsgIOBase = "https://epsg.io/"

// EPSGLookupURL returns the reference page URL for a numeric EPSG code.
func EPSGLookupURL(code int) string {
	return fmt.Sprintf("%s%d", epsgIOBase, code)
}

// EPSGRef formats a numeric code as the standard "EPSG:<code>" identifier.
func EPSGRef(code int) string {
	return fmt.Sprintf("EPSG:%d", code)
}

// ParseEPSGRef extracts the numeric code from an "EPSG:<code>" identifier.
func ParseEPSGRef(ref string) (int, error) {
	rest, ok := strings.CutPrefix(ref, "EPSG:")
	if !ok {
		return 0, fmt.Errorf("parse epsg ref %q: missing EPSG prefix", ref)
	}
	code, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("parse epsg ref %q: %w", ref, err)
	}
	return code, nil
}

// ProjectionEntry maps a human-readable projection name to an EPSG identifier.
type ProjectionEntry struct {
	Name string
	Code string // "EPSG:<code>"
}

// ProjectionInfo is the ordered projection table for one resolution.
// Order is presentation order; names are unique within one table.
type ProjectionInfo []ProjectionEntry

// Lookup returns the EPSG identifier for a projection name.
func (p ProjectionInfo) Lookup(name string) (string, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Code, true
		}
	}
	return "", false
}

// Codes returns the numeric EPSG codes of every entry, in table order.
// Entries whose identifier does not parse are skipped.
func (p ProjectionInfo) Codes() []int {
	codes := make([]int, 0, len(p))
	for _, e := range p {
		code, err := ParseEPSGRef(e.Code)
		if err != nil {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

// BuildProjectionTable assembles the fixed five-entry projection table for a
// coordinate. Every entry except the UTM zone is a constant, byte-identical
// across calls; only the UTM entry varies with the input.
func BuildProjectionTable(lat, lon float64) ProjectionInfo {
	zone := ResolveUTM(lat, lon)
	return ProjectionInfo{
		{Name: "WGS84 (Geographic)", Code: EPSGRef(EPSGWGS84)},
		{Name: fmt.Sprintf("UTM Zone %s", zone), Code: EPSGRef(zone.EPSG())},
		{Name: "Web Mercator", Code: EPSGRef(EPSGWebMercator)},
		{Name: "Equal Earth", Code: EPSGRef(EPSGEqualEarth)},
		{Name: "World Cylindrical Equal Area", Code: EPSGRef(EPSGWorldCEA)},
	}
}

// ResolutionResult is one successful single-point resolution. It carries no
// identity beyond the call that produced it; the core never persists results
// (session caching belongs to the orchestration layer).
type ResolutionResult struct {
	Coordinate  Coordinate
	Projections ProjectionInfo
}

// Resolve builds the full resolution result for a coordinate.
func Resolve(c Coordinate) ResolutionResult {
	return ResolutionResult{
		Coordinate:  c,
		Projections: BuildProjectionTable(c.Lat, c.Lon),
	}
}
