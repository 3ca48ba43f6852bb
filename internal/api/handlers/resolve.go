package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"epsg-finder-service/internal/api/dto"
	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/ports"
	"epsg-finder-service/internal/services"
)

type ResolveHandler struct {
	Store ports.ResultStore
	CRS   ports.CRSProvider
}

// Resolve answers single-point lookups. GET takes decimal-degree query
// parameters; POST takes a JSON body in decimal degrees or DMS tuples.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.resolveQuery(w, r)
	case http.MethodPost:
		h.resolveBody(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ResolveHandler) resolveQuery(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.resolve(w, r, domain.Coordinate{Lat: lat, Lon: lon})
}

func (h *ResolveHandler) resolveBody(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveRequest

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

	lat := req.Lat
	if req.LatDMS != nil {
		v, err := convertDMS(req.LatDMS, domain.North, domain.South)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		lat = v
	}

	lon := req.Lon
	if req.LonDMS != nil {
		v, err := convertDMS(req.LonDMS, domain.East, domain.West)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		lon = v
	}

	h.resolve(w, r, domain.Coordinate{Lat: lat, Lon: lon})
}

func (h *ResolveHandler) resolve(w http.ResponseWriter, r *http.Request, coord domain.Coordinate) {
	// The zero pair is how an untouched input form arrives.
	if coord.IsOrigin() {
		writeError(w, r, http.StatusUnprocessableEntity, "enter valid coordinates")
		return
	}

	out, err := services.ResolvePoint(r.Context(), sessionID(w, r), coord, h.Store, h.CRS)
	if err != nil {
		log.Printf("resolve point failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, buildResolveResponse(out.Result, out.Details))
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

// convertDMS converts one DMS tuple, holding the direction to the axis
// it belongs to (N/S for latitude, E/W for longitude).
func convertDMS(d *dto.DMSRequest, a, b domain.Direction) (float64, error) {
	dir := domain.Direction(strings.ToUpper(strings.TrimSpace(d.Direction)))
	if dir != a && dir != b {
		return 0, fmt.Errorf("direction %q must be %s or %s", d.Direction, a, b)
	}

	angle := domain.DMS{
		Degrees:   d.Degrees,
		Minutes:   d.Minutes,
		Seconds:   d.Seconds,
		Direction: dir,
	}
	return angle.DecimalDegrees()
}

func buildResolveResponse(res domain.ResolutionResult, details []ports.CRSDetail) dto.ResolveResponse {
	zone := domain.ResolveUTM(res.Coordinate.Lat, res.Coordinate.Lon)

	out := dto.ResolveResponse{
		Lat:         res.Coordinate.Lat,
		Lon:         res.Coordinate.Lon,
		UTMZone:     zone.String(),
		EPSGCode:    zone.EPSG(),
		Projections: make([]dto.ProjectionEntryResponse, 0, len(res.Projections)),
		Details:     make([]dto.CRSDetailResponse, 0, len(details)),
	}

	for _, e := range res.Projections {
		entry := dto.ProjectionEntryResponse{Name: e.Name, Code: e.Code}
		if code, err := domain.ParseEPSGRef(e.Code); err == nil {
			entry.URL = domain.EPSGLookupURL(code)
		}
		out.Projections = append(out.Projections, entry)
	}

	for _, d := range details {
		out.Details = append(out.Details, dto.CRSDetailResponse{
			Code:  d.Code,
			Name:  d.Name,
			Kind:  d.Kind,
			Proj4: d.Proj4,
			Unit:  d.Unit,
			Area:  d.Area,
		})
	}

	return out
}
