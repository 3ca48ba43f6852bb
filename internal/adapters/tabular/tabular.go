// Package tabular reads coordinate tables from CSV and XLSX input and
// writes resolved batch output back out as CSV.
package tabular

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"epsg-finder-service/internal/domain"
)

// ReadNamed parses tabular input, picking the format from the file
// name's extension.
func ReadNamed(name string, r io.Reader) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", name, err)
		}
		return ReadXLSX(b)
	default:
		return nil, fmt.Errorf("unsupported table format %q", ext)
	}
}

// ReadFile parses a coordinate table from disk.
func ReadFile(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	return ReadNamed(path, f)
}
