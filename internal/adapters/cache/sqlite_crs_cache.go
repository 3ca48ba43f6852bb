package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"epsg-finder-service/internal/ports"
)

// SQLite backed cache for CRS registry metadata keyed by EPSG code.
type SqliteCRSCache struct {
	DB *sql.DB
}

func NewSqliteCRSCache(db *sql.DB) *SqliteCRSCache {
	return &SqliteCRSCache{DB: db}
}

// Fetch cached details for many EPSG codes.
func (s *SqliteCRSCache) GetMany(ctx context.Context, codes []int) (map[int]ports.CRSDetail, error) {
	if s.DB == nil {
		return nil, errors.New("crs cache: db is nil")
	}

	if len(codes) == 0 {
		return map[int]ports.CRSDetail{}, nil
	}

	seen := map[int]struct{}{}
	args := make([]any, 0, len(codes))
	ph := make([]string, 0, len(codes))
	for _, c := range codes {
		if c <= 0 {
			continue
		}

		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		args = append(args, c)
		ph = append(ph, "?")
	}

	if len(args) == 0 {
		return map[int]ports.CRSDetail{}, nil
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT code, name, kind, proj4, unit, area
    FROM crs_details_cache
    WHERE code IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get crs cache: query crs_details_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[int]ports.CRSDetail, len(args))
	for rows.Next() {
		var d ports.CRSDetail
		if err := rows.Scan(&d.Code, &d.Name, &d.Kind, &d.Proj4, &d.Unit, &d.Area); err != nil {
			return nil, fmt.Errorf("get crs cache: scan rows: %w", err)
		}
		out[d.Code] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get crs cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached details keyed by EPSG code.
func (s *SqliteCRSCache) PutMany(ctx context.Context, details map[int]ports.CRSDetail) error {
	if s.DB == nil {
		return errors.New("crs cache: db is nil")
	}

	if len(details) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert crs cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO crs_details_cache (
        code,
        name,
        kind,
        proj4,
        unit,
        area
    )
    VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert crs cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for code, d := range details {
		if code <= 0 {
			return fmt.Errorf("insert crs cache: invalid code %d", code)
		}

		if _, err := stmt.ExecContext(ctx, code, d.Name, d.Kind, d.Proj4, d.Unit, d.Area); err != nil {
			return fmt.Errorf("insert crs cache code=%d: %w", code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert crs cache commit: %w", err)
	}

	return nil
}
