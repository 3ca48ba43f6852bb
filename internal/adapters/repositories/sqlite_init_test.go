package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const seedFixture = `[
	{"position": 1, "name": "WGS84 (Geographic)", "code": "EPSG:4326", "description": "Latitude and longitude on the WGS84 ellipsoid.", "info_url": "https://epsg.io/4326"},
	{"position": 2, "name": "Web Mercator", "code": "EPSG:3857", "description": "Spherical Mercator used by web map tiles.", "info_url": "https://epsg.io/3857"},
	{"position": 3, "name": "Equal Earth", "code": "EPSG:8857", "description": "Equal-area pseudocylindrical world projection.", "info_url": "https://epsg.io/8857"}
]`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "crs.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeedAndListCatalog(t *testing.T) {
	db := openTestDB(t)

	if err := SeedFromJSON(db, writeSeedFile(t, seedFixture)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSqliteCRSRepository(db)
	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "WGS84 (Geographic)" || entries[0].Code != "EPSG:4326" {
		t.Fatalf("first entry = %+v", entries[0])
	}
	for i, e := range entries {
		if e.Position != i+1 {
			t.Fatalf("entry %d position = %d, want %d", i, e.Position, i+1)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedPath := writeSeedFile(t, seedFixture)

	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	entries, err := NewSqliteCRSRepository(db).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after reseed, got %d", len(entries))
	}
}

func TestSeedRejectsInvalidEntries(t *testing.T) {
	db := openTestDB(t)

	cases := []struct {
		name string
		json string
	}{
		{"zero position", `[{"position": 0, "name": "X", "code": "EPSG:1"}]`},
		{"empty name", `[{"position": 1, "name": " ", "code": "EPSG:1"}]`},
		{"empty code", `[{"position": 1, "name": "X", "code": ""}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := SeedFromJSON(db, writeSeedFile(t, tc.json)); err == nil {
				t.Fatal("expected seed to fail")
			}
		})
	}
}
