package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCatalogQuery := `
	CREATE TABLE IF NOT EXISTS crs_catalog (
        position INTEGER PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        code TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        info_url TEXT NOT NULL DEFAULT ''
    );
	`

	createDetailsCacheQuery := `
	CREATE TABLE IF NOT EXISTS crs_details_cache (
        code INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        kind TEXT NOT NULL,
        proj4 TEXT NOT NULL,
        unit TEXT NOT NULL,
        area TEXT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_crs_catalog_code
    ON crs_catalog(code);
	`

	statements := []string{
		createCatalogQuery,
		createDetailsCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with catalog data from a JSON file.
func SeedFromJSONPostgres(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data []CatalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO crs_catalog (position, name, code, description, info_url)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (position) DO UPDATE
	SET name = EXCLUDED.name,
		code = EXCLUDED.code,
		description = EXCLUDED.description,
		info_url = EXCLUDED.info_url;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range data {
		if e.Position <= 0 {
			return fmt.Errorf("seed catalog: invalid position at index %d: %d", i+1, e.Position)
		}
		name := strings.TrimSpace(e.Name)
		code := strings.TrimSpace(e.Code)
		if name == "" || code == "" {
			return fmt.Errorf("seed catalog: item at index %d: name and code cannot be empty", i+1)
		}

		if _, err := stmt.Exec(e.Position, name, code, strings.TrimSpace(e.Description), strings.TrimSpace(e.InfoURL)); err != nil {
			return fmt.Errorf("seed catalog: insert position=%d: %w", e.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
