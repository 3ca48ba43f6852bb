package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"epsg-finder-service/internal/ports"
)

// SQLite-backed implementation of the CRSCatalog port.
type SqliteCRSRepository struct{ DB *sql.DB }

func NewSqliteCRSRepository(db *sql.DB) *SqliteCRSRepository {
	return &SqliteCRSRepository{DB: db}
}

// Return all catalog entries in display order.
func (s *SqliteCRSRepository) List(ctx context.Context) ([]ports.CatalogEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite crs repository: DB is nil")
	}

	query := `
	SELECT
		position,
		name,
		code,
		description,
		info_url
	FROM crs_catalog
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list catalog: query crs_catalog table: %w", err)
	}
	defer rows.Close()

	entries := make([]ports.CatalogEntry, 0, 8)
	for rows.Next() {
		var e ports.CatalogEntry
		if err := rows.Scan(&e.Position, &e.Name, &e.Code, &e.Description, &e.InfoURL); err != nil {
			return nil, fmt.Errorf("list catalog: scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalog: row iteration: %w", err)
	}

	return entries, nil
}
