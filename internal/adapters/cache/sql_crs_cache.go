package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"epsg-finder-service/internal/platform/obs"
	"epsg-finder-service/internal/ports"
)

// SQLCRSCache is a SQL-backed cache for CRS registry metadata keyed by
// EPSG code.
type SQLCRSCache struct {
	DB *sql.DB
}

func NewSQLCRSCache(db *sql.DB) *SQLCRSCache {
	return &SQLCRSCache{DB: db}
}

// Fetch cached details for many EPSG codes.
func (s *SQLCRSCache) GetMany(ctx context.Context, codes []int) (_ map[int]ports.CRSDetail, err error) {
	defer obs.Time(ctx, "crs.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("crs cache: db is nil")
	}

	if len(codes) == 0 {
		return map[int]ports.CRSDetail{}, nil
	}

	seen := map[int]struct{}{}
	uniq := make([]int32, 0, len(codes))
	for _, c := range codes {
		if c <= 0 {
			continue
		}

		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, int32(c))
	}

	if len(uniq) == 0 {
		return map[int]ports.CRSDetail{}, nil
	}

	q := `
	SELECT code, name, kind, proj4, unit, area
    FROM crs_details_cache
    WHERE code = ANY($1::int[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get crs cache: query crs_details_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[int]ports.CRSDetail, len(uniq))
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
func (s *SQLCRSCache) PutMany(ctx context.Context, details map[int]ports.CRSDetail) error {
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
	INSERT INTO crs_details_cache (code, name, kind, proj4, unit, area)
    VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (code) DO UPDATE
	SET name = EXCLUDED.name,
		kind = EXCLUDED.kind,
		proj4 = EXCLUDED.proj4,
		unit = EXCLUDED.unit,
		area = EXCLUDED.area;
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
