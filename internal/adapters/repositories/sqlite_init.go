package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
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

type CatalogSeed struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	InfoURL     string `json:"info_url"`
}

// Populate the database with catalog data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data []CatalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	rows := make([]CatalogSeed, 0, len(data))
	for i, item := range data {
		if item.Position <= 0 {
			return fmt.Errorf("seed catalog: invalid position at index %d: %d", i+1, item.Position)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed catalog: item at index %d: name cannot be empty", i+1)
		}

		code := strings.TrimSpace(item.Code)
		if code == "" {
			return fmt.Errorf("seed catalog: item at index %d: code cannot be empty", i+1)
		}

		rows = append(rows, CatalogSeed{
			Position:    item.Position,
			Name:        name,
			Code:        code,
			Description: strings.TrimSpace(item.Description),
			InfoURL:     strings.TrimSpace(item.InfoURL),
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO crs_catalog (
		position,
		name,
		code,
		description,
		info_url
	)
	VALUES (?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range rows {
		if _, err := stmt.Exec(e.Position, e.Name, e.Code, e.Description, e.InfoURL); err != nil {
			return fmt.Errorf("seed catalog: insert position=%d: %w", e.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
