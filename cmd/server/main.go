package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"epsg-finder-service/internal/adapters/cache"
	"epsg-finder-service/internal/adapters/epsgio"
	"epsg-finder-service/internal/adapters/repositories"
	"epsg-finder-service/internal/adapters/session"
	"epsg-finder-service/internal/api"
	"epsg-finder-service/internal/config"
	"epsg-finder-service/internal/platform/db"
	"epsg-finder-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Redis, epsg.io) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/crs.json")
	port := config.Get("PORT", "8080")
	workers := config.GetInt("BATCH_WORKERS", 0)

	sqlDB, postgres, err := openStorage()
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Initialize schema and seed the projection catalog on startup for
	// local runs. Both are idempotent.
	if err := initAndSeed(sqlDB, postgres, seedPath); err != nil {
		log.Fatal(err)
	}

	var catalog ports.CRSCatalog = repositories.NewSqliteCRSRepository(sqlDB)

	// The registry client reads through a persistent detail cache so the
	// same handful of codes never hits epsg.io twice.
	var crs ports.CRSProvider
	if config.GetBool("CRS_ENRICHMENT", true) {
		var detailCache ports.CRSDetailCache
		if postgres {
			detailCache = cache.NewSQLCRSCache(sqlDB)
		} else {
			detailCache = cache.NewSqliteCRSCache(sqlDB)
		}
		crs = epsgio.NewClient(detailCache)
	}

	store := openResultStore()
	router := api.NewRouter(store, crs, catalog, workers)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage opens Postgres when DATABASE_URL is set, the embedded
// SQLite file otherwise. The second return reports which flavor.
func openStorage() (*sql.DB, bool, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		d, err := db.Open(databaseURL)
		if err != nil {
			return nil, false, err
		}
		return d, true, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, false, fmt.Errorf("openStorage: open sqlite database %q: %w", dbPath, err)
	}
	if err := d.Ping(); err != nil {
		return nil, false, fmt.Errorf("openStorage: verify sqlite connection to %q: %w", dbPath, err)
	}
	return d, false, nil
}

// openResultStore keeps session results in Redis when REDIS_ADDR is
// set, in process memory otherwise.
func openResultStore() ports.ResultStore {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB", 0),
	})

	ttl := config.GetDuration("RESULT_TTL", 30*time.Minute)
	log.Printf("Session results stored in redis addr=%s ttl=%s", addr, ttl)
	return session.NewRedisStore(client, ttl)
}

func initAndSeed(sqlDB *sql.DB, postgres bool, seedPath string) error {
	if postgres {
		if err := repositories.InitSchemaPostgres(sqlDB); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		if err := repositories.SeedFromJSONPostgres(sqlDB, seedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.InitSchema(sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
