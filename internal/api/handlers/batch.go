package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"epsg-finder-service/internal/adapters/tabular"
	"epsg-finder-service/internal/api/dto"
	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/services"
)

const (
	maxUploadBytes = 10 << 20
	outputFilename = "epsg_lookup_output.csv"
)

type BatchHandler struct {
	// Workers caps concurrent row resolution; zero uses the service default.
	Workers int
}

// Resolve answers JSON batch lookups: every row resolves independently
// and the response preserves input order.
func (h *BatchHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Rows) == 0 {
		writeError(w, r, http.StatusBadRequest, "rows must not be empty")
		return
	}

	records := make([]domain.BatchRecord, 0, len(req.Rows))
	for _, row := range req.Rows {
		records = append(records, domain.BatchRecord{
			Lat: string(row.Lat),
			Lon: string(row.Lon),
		})
	}

	rows := services.ResolveBatch(records, services.BatchOptions{Workers: h.Workers})
	writeJSON(w, r, http.StatusOK, toBatchResponse(rows))
}

// Upload answers file batch lookups. The table format is picked from the
// uploaded file name; ?format=csv streams the augmented table back as a
// CSV attachment instead of JSON.
func (h *BatchHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart file field is required")
		return
	}
	defer file.Close()

	tbl, err := tabular.ReadNamed(header.Filename, file)
	if err != nil {
		log.Printf("parse upload %q failed: %v", header.Filename, err)
		writeError(w, r, http.StatusBadRequest, "could not parse table file")
		return
	}

	rows, err := services.ResolveTable(tbl, services.BatchOptions{Workers: h.Workers})
	if err != nil {
		var missing *domain.MissingColumnsError
		if errors.As(err, &missing) {
			msg := fmt.Sprintf("missing required columns: %s", strings.Join(missing.Missing, ", "))
			writeError(w, r, http.StatusUnprocessableEntity, msg)
			return
		}

		log.Printf("resolve upload failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFilename))
		if err := tabular.WriteCSV(w, rows); err != nil {
			log.Printf("write csv response failed: %v", err)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toBatchResponse(rows))
}

func toBatchResponse(rows []domain.BatchRow) dto.BatchResponse {
	res := dto.BatchResponse{
		Processed: len(rows),
		Failed:    services.CountFailed(rows),
		Rows:      make([]dto.BatchRowResponse, 0, len(rows)),
	}

	for _, row := range rows {
		out := dto.BatchRowResponse{
			Lat: row.Record.Lat,
			Lon: row.Record.Lon,
		}
		if row.Failed() {
			out.Error = row.Err.Error()
		} else {
			out.UTMZone = row.Zone.String()
			out.EPSGCode = row.EPSG
			out.EPSGLink = row.LookupURL
		}
		res.Rows = append(res.Rows, out)
	}

	return res
}
