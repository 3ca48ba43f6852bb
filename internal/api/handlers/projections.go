package handlers

import (
	"log"
	"net/http"

	"epsg-finder-service/internal/api/dto"
	"epsg-finder-service/internal/ports"
)

// CatalogHandler exposes the seeded reference projection catalog.
type CatalogHandler struct {
	Catalog ports.CRSCatalog
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries, err := h.Catalog.List(r.Context())
	if err != nil {
		log.Printf("list catalog failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCatalogResponse{
		Projections: make([]dto.CatalogEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Projections = append(res.Projections, dto.CatalogEntryResponse{
			Position:    e.Position,
			Name:        e.Name,
			Code:        e.Code,
			Description: e.Description,
			InfoURL:     e.InfoURL,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
