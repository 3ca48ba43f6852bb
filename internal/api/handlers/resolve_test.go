package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"epsg-finder-service/internal/adapters/session"
	"epsg-finder-service/internal/api/dto"
)

func decodeResolve(t *testing.T, rec *httptest.ResponseRecorder) dto.ResolveResponse {
	t.Helper()

	var res dto.ResolveResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestResolveGet(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?lat=28.6&lon=77.2", nil)
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	res := decodeResolve(t, rec)
	if res.UTMZone != "43N" || res.EPSGCode != 32643 {
		t.Fatalf("zone = %q epsg = %d, want 43N/32643", res.UTMZone, res.EPSGCode)
	}
	if len(res.Projections) != 5 {
		t.Fatalf("expected 5 projections, got %d", len(res.Projections))
	}
	if res.Projections[1].Name != "UTM Zone 43N" || res.Projections[1].URL != "https://epsg.io/32643" {
		t.Fatalf("utm projection = %+v", res.Projections[1])
	}
	if res.Projections[0].Code != "EPSG:4326" {
		t.Fatalf("first projection = %+v, want WGS84 entry", res.Projections[0])
	}
}

func TestResolveGetValidation(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	cases := []struct {
		name   string
		target string
	}{
		{"missing lat", "/api/resolve?lon=77.2"},
		{"missing lon", "/api/resolve?lat=28.6"},
		{"bad lat", "/api/resolve?lat=abc&lon=77.2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Resolve(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestResolvePostDecimalDegrees(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	body := `{"lat": 51.5, "lon": -0.1}`
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	res := decodeResolve(t, rec)
	if res.UTMZone != "30N" || res.EPSGCode != 32630 {
		t.Fatalf("zone = %q epsg = %d, want 30N/32630", res.UTMZone, res.EPSGCode)
	}
}

func TestResolvePostDMS(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	body := `{
		"lat_dms": {"degrees": 51, "minutes": 30, "seconds": 0, "direction": "N"},
		"lon_dms": {"degrees": 0, "minutes": 6, "seconds": 0, "direction": "w"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	res := decodeResolve(t, rec)
	if res.Lat != 51.5 || res.Lon != -0.1 {
		t.Fatalf("coordinates = (%v, %v), want (51.5, -0.1)", res.Lat, res.Lon)
	}
	if res.UTMZone != "30N" {
		t.Fatalf("zone = %q, want 30N", res.UTMZone)
	}
}

func TestResolvePostDMSWrongAxis(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	// East is not a latitude direction.
	body := `{
		"lat_dms": {"degrees": 51, "minutes": 30, "seconds": 0, "direction": "E"},
		"lon_dms": {"degrees": 0, "minutes": 6, "seconds": 0, "direction": "W"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestResolveOriginRejected(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(`{"lat": 0, "lon": 0}`))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestResolveUnknownField(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(`{"latitude": 1}`))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestResolveMethodNotAllowed(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	rec := httptest.NewRecorder()
	h.Resolve(rec, httptest.NewRequest(http.MethodPut, "/api/resolve", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Fatalf("Allow = %q, want GET, POST", allow)
	}
}

func TestResolveStoresSessionResult(t *testing.T) {
	store := session.NewMemoryStore()
	h := &ResolveHandler{Store: store}

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?lat=51.5&lon=-0.1", nil)
	req.Header.Set("X-Session-ID", "sess-abc")
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	stored, err := store.Get(context.Background(), "sess-abc")
	if err != nil {
		t.Fatalf("stored result missing: %v", err)
	}
	if stored.Coordinate.Lat != 51.5 {
		t.Fatalf("stored lat = %v, want 51.5", stored.Coordinate.Lat)
	}
}

func TestResolveSetsSessionCookie(t *testing.T) {
	h := &ResolveHandler{Store: session.NewMemoryStore()}

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?lat=51.5&lon=-0.1", nil)
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == sessionCookie && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a session cookie on first contact")
	}
}
