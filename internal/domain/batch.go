package domain

import "fmt"

// Required coordinate columns for batch input, matched case-insensitively.
const (
	ColumnLat = "lat"
	ColumnLon = "lon"
)

// BatchRecord is one raw input row: the coordinate values exactly as the
// caller supplied them, before numeric interpretation.
type BatchRecord struct {
	Lat string
	Lon string
}

// RowConversionError marks a single row whose coordinate value could not be
// interpreted as a number. It is attached to that row's output and never
// aborts the rest of the batch.
type RowConversionError struct {
	Field string // "lat" or "lon"
	Value string
	Err   error
}

func (e *RowConversionError) Error() string {
	return fmt.Sprintf("row %s value %q is not numeric", e.Field, e.Value)
}

func (e *RowConversionError) Unwrap() error { return e.Err }

// BatchRow is one processed batch row: the input record plus either the
// derived projection fields or the row-scoped error.
type BatchRow struct {
	Record     BatchRecord
	Coordinate Coordinate
	Zone       UTMZone
	EPSG       int
	LookupURL  string
	Err        error
}

// Failed reports whether the row carries a row-scoped error.
func (r BatchRow) Failed() bool { return r.Err != nil }
