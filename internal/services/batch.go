package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"epsg-finder-service/internal/domain"
)

const defaultBatchWorkers = 5

// Tuning for batch resolution. The zero value picks sensible defaults.
type BatchOptions struct {
	// Workers caps concurrent row resolution. Values below 2 run the
	// batch sequentially.
	Workers int
}

func (o BatchOptions) workers() int {
	if o.Workers <= 0 {
		return defaultBatchWorkers
	}
	return o.Workers
}

// parseCoordValue parses one coordinate cell, attributing failures to the
// named field so batch output can report which cell was bad.
func parseCoordValue(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &domain.RowConversionError{Field: field, Value: value, Err: err}
	}
	return v, nil
}

// resolveRecord resolves a single batch record. Parse failures are
// captured on the row rather than returned.
func resolveRecord(rec domain.BatchRecord) domain.BatchRow {
	row := domain.BatchRow{Record: rec}

	lat, err := parseCoordValue(domain.ColumnLat, rec.Lat)
	if err != nil {
		row.Err = err
		return row
	}
	lon, err := parseCoordValue(domain.ColumnLon, rec.Lon)
	if err != nil {
		row.Err = err
		return row
	}

	row.Coordinate = domain.Coordinate{Lat: lat, Lon: lon}
	row.Zone = domain.ResolveUTM(lat, lon)
	row.EPSG = row.Zone.EPSG()
	row.LookupURL = domain.EPSGLookupURL(row.EPSG)
	return row
}

// ResolveBatch resolves every record to a UTM zone and EPSG code.
//
// Output preserves input order: row i always corresponds to record i.
// A record that fails to parse produces a row carrying the error; it
// never aborts the batch or disturbs neighboring rows.
func ResolveBatch(records []domain.BatchRecord, opts BatchOptions) []domain.BatchRow {
	rows := make([]domain.BatchRow, len(records))
	if len(records) == 0 {
		return rows
	}

	workers := opts.workers()
	if workers < 2 || len(records) < 2 {
		for i, rec := range records {
			rows[i] = resolveRecord(rec)
		}
		return rows
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, rec := range records {
		wg.Add(1)
		go func(i int, rec domain.BatchRecord) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			// Each goroutine writes only its own slot.
			rows[i] = resolveRecord(rec)
		}(i, rec)
	}

	wg.Wait()
	return rows
}

// ResolveTable resolves the lat/lon columns of a parsed table.
//
// The table must carry both coordinate columns; a missing column fails
// the whole call before any row is resolved.
func ResolveTable(t *domain.Table, opts BatchOptions) ([]domain.BatchRow, error) {
	if err := t.Require(domain.ColumnLat, domain.ColumnLon); err != nil {
		return nil, fmt.Errorf("resolve table: %w", err)
	}

	latIdx, _ := t.Column(domain.ColumnLat)
	lonIdx, _ := t.Column(domain.ColumnLon)

	records := make([]domain.BatchRecord, t.Len())
	for i := range records {
		records[i] = domain.BatchRecord{
			Lat: t.Cell(i, latIdx),
			Lon: t.Cell(i, lonIdx),
		}
	}

	return ResolveBatch(records, opts), nil
}

// ResolveCoordinates resolves already-parsed coordinates, reusing the
// batch machinery for ordering and concurrency.
func ResolveCoordinates(coords []domain.Coordinate, opts BatchOptions) []domain.BatchRow {
	records := make([]domain.BatchRecord, len(coords))
	for i, c := range coords {
		records[i] = domain.BatchRecord{
			Lat: strconv.FormatFloat(c.Lat, 'f', -1, 64),
			Lon: strconv.FormatFloat(c.Lon, 'f', -1, 64),
		}
	}
	return ResolveBatch(records, opts)
}

// CountFailed reports how many rows carry an error.
func CountFailed(rows []domain.BatchRow) int {
	n := 0
	for _, r := range rows {
		if r.Failed() {
			n++
		}
	}
	return n
}
