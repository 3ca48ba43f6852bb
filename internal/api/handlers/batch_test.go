package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"epsg-finder-service/internal/api/dto"
)

func decodeBatch(t *testing.T, rec *httptest.ResponseRecorder) dto.BatchResponse {
	t.Helper()

	var res dto.BatchResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestBatchResolve(t *testing.T) {
	h := &BatchHandler{}

	// Rows mix JSON numbers and strings; the bad cell fails only its row.
	body := `{"rows": [
		{"lat": 28.6, "lon": 77.2},
		{"lat": "not-a-number", "lon": "77.2"},
		{"lat": "-33.9", "lon": 151.2}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	res := decodeBatch(t, rec)
	if res.Processed != 3 || res.Failed != 1 {
		t.Fatalf("processed = %d failed = %d, want 3/1", res.Processed, res.Failed)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(res.Rows))
	}

	if res.Rows[0].EPSGCode != 32643 || res.Rows[0].UTMZone != "43N" {
		t.Fatalf("row 0 = %+v, want 43N/32643", res.Rows[0])
	}
	if res.Rows[1].Error == "" || res.Rows[1].EPSGCode != 0 {
		t.Fatalf("row 1 = %+v, want error and no code", res.Rows[1])
	}
	if res.Rows[1].Lat != "not-a-number" {
		t.Fatalf("row 1 lat = %q, want raw input echoed", res.Rows[1].Lat)
	}
	if res.Rows[2].EPSGCode != 32756 {
		t.Fatalf("row 2 = %+v, want 32756", res.Rows[2])
	}
	if res.Rows[2].EPSGLink != "https://epsg.io/32756" {
		t.Fatalf("row 2 link = %q", res.Rows[2].EPSGLink)
	}
}

func TestBatchResolveEmptyRows(t *testing.T) {
	h := &BatchHandler{}

	req := httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(`{"rows": []}`))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBatchResolveMethodNotAllowed(t *testing.T) {
	h := &BatchHandler{}

	rec := httptest.NewRecorder()
	h.Resolve(rec, httptest.NewRequest(http.MethodGet, "/api/batch", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestBatchUpload(t *testing.T) {
	h := &BatchHandler{}

	body, contentType := multipartCSV(t, "points.csv", "lat,lon\n28.6,77.2\n-33.9,151.2\n")
	req := httptest.NewRequest(http.MethodPost, "/api/batch/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	res := decodeBatch(t, rec)
	if res.Processed != 2 || res.Failed != 0 {
		t.Fatalf("processed = %d failed = %d, want 2/0", res.Processed, res.Failed)
	}
	if res.Rows[0].EPSGCode != 32643 || res.Rows[1].EPSGCode != 32756 {
		t.Fatalf("rows = %+v", res.Rows)
	}
}

func TestBatchUploadMissingColumns(t *testing.T) {
	h := &BatchHandler{}

	body, contentType := multipartCSV(t, "points.csv", "lat,city\n28.6,Delhi\n")
	req := httptest.NewRequest(http.MethodPost, "/api/batch/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "lon") {
		t.Fatalf("body %s should name the missing column", rec.Body.String())
	}
}

func TestBatchUploadCSVAttachment(t *testing.T) {
	h := &BatchHandler{}

	body, contentType := multipartCSV(t, "points.csv", "lat,lon\n28.6,77.2\nbad,77.2\n")
	req := httptest.NewRequest(http.MethodPost, "/api/batch/upload?format=csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, outputFilename) {
		t.Fatalf("content disposition = %q, want attachment %s", cd, outputFilename)
	}

	out := rec.Body.String()
	if !strings.Contains(out, "UTM Zone") {
		t.Fatalf("csv output missing header: %s", out)
	}
	if !strings.Contains(out, "43N") || !strings.Contains(out, "32643") {
		t.Fatalf("csv output missing resolved row: %s", out)
	}
}

func TestBatchUploadNoFile(t *testing.T) {
	h := &BatchHandler{}

	req := httptest.NewRequest(http.MethodPost, "/api/batch/upload", strings.NewReader("plain body"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
