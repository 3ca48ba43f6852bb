package handlers

import (
	"errors"
	"log"
	"net/http"

	"epsg-finder-service/internal/ports"
)

type ResultHandler struct {
	Store ports.ResultStore
}

// Result exposes the session's most recent resolution. GET returns it,
// DELETE clears it.
func (h *ResultHandler) Result(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodDelete:
		h.clear(w, r)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ResultHandler) get(w http.ResponseWriter, r *http.Request) {
	res, err := h.Store.Get(r.Context(), sessionID(w, r))
	if errors.Is(err, ports.ErrNoResult) {
		writeError(w, r, http.StatusNotFound, "no result stored")
		return
	}
	if err != nil {
		log.Printf("get stored result failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, buildResolveResponse(res, nil))
}

func (h *ResultHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(r.Context(), sessionID(w, r)); err != nil {
		log.Printf("clear stored result failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
