package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"epsg-finder-service/internal/domain"
)

// ReadCSV parses comma-separated input into a table. The first record
// holds the column headers.
func ReadCSV(r io.Reader) (*domain.Table, error) {
	cr := csv.NewReader(r)
	// Rows may be ragged; short rows read as empty cells downstream.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return domain.NewTable(nil, nil), nil
	}
	return domain.NewTable(records[0], records[1:]), nil
}

// WriteCSV writes resolved batch rows as CSV. Successful rows carry the
// zone, code and registry link; failed rows echo their raw input and the
// error message instead.
func WriteCSV(w io.Writer, rows []domain.BatchRow) error {
	cw := csv.NewWriter(w)

	header := []string{"lat", "lon", "UTM Zone", "EPSG Code", "EPSG Link", "Error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, row := range rows {
		var record []string
		if row.Failed() {
			record = []string{row.Record.Lat, row.Record.Lon, "", "", "", row.Err.Error()}
		} else {
			record = []string{
				strconv.FormatFloat(row.Coordinate.Lat, 'f', -1, 64),
				strconv.FormatFloat(row.Coordinate.Lon, 'f', -1, 64),
				row.Zone.String(),
				strconv.Itoa(row.EPSG),
				row.LookupURL,
				"",
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
