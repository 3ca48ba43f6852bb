package tabular

import (
	"errors"
	"fmt"

	"github.com/tealeg/xlsx"

	"epsg-finder-service/internal/domain"
)

// ReadXLSX parses the first worksheet of an xlsx workbook into a table.
// The first row holds the column headers.
func ReadXLSX(b []byte) (*domain.Table, error) {
	f, err := xlsx.OpenBinary(b)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	if len(f.Sheets) == 0 {
		return nil, errors.New("xlsx workbook has no sheets")
	}
	sheet := f.Sheets[0]

	if len(sheet.Rows) == 0 {
		return domain.NewTable(nil, nil), nil
	}

	headers := cellValues(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, r := range sheet.Rows[1:] {
		rows = append(rows, cellValues(r))
	}

	return domain.NewTable(headers, rows), nil
}

func cellValues(r *xlsx.Row) []string {
	out := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		out = append(out, c.Value)
	}
	return out
}
