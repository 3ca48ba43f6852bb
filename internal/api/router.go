package api

import (
	"net/http"

	"epsg-finder-service/internal/api/handlers"
	"epsg-finder-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(store ports.ResultStore, crs ports.CRSProvider, catalog ports.CRSCatalog, batchWorkers int) http.Handler {
	mux := http.NewServeMux()

	resolveHandler := &handlers.ResolveHandler{Store: store, CRS: crs}
	resultHandler := &handlers.ResultHandler{Store: store}
	batchHandler := &handlers.BatchHandler{Workers: batchWorkers}
	catalogHandler := &handlers.CatalogHandler{Catalog: catalog}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/resolve", resolveHandler.Resolve)
	mux.HandleFunc("/api/result", resultHandler.Result)
	mux.HandleFunc("/api/batch", batchHandler.Resolve)
	mux.HandleFunc("/api/batch/upload", batchHandler.Upload)
	mux.HandleFunc("/api/projections", catalogHandler.List)

	return loggingMiddleware(mux)
}
