package services

import (
	"context"
	"errors"
	"testing"

	"epsg-finder-service/internal/adapters/epsgio"
	"epsg-finder-service/internal/adapters/session"
	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/ports"
)

type failStore struct{}

func (failStore) Save(ctx context.Context, sessionID string, res domain.ResolutionResult) error {
	return errors.New("store down")
}

func (failStore) Get(ctx context.Context, sessionID string) (domain.ResolutionResult, error) {
	return domain.ResolutionResult{}, errors.New("store down")
}

func (failStore) Clear(ctx context.Context, sessionID string) error {
	return errors.New("store down")
}

type batchProvider struct {
	calls int
	m     map[int]ports.CRSDetail
}

func (p *batchProvider) Describe(ctx context.Context, code int) (ports.CRSDetail, error) {
	return ports.CRSDetail{}, errors.New("single describe should not be used")
}

func (p *batchProvider) DescribeMany(ctx context.Context, codes []int) (map[int]ports.CRSDetail, error) {
	p.calls++
	out := make(map[int]ports.CRSDetail)
	for _, code := range codes {
		if d, ok := p.m[code]; ok {
			out[code] = d
		}
	}
	return out, nil
}

func delhiDetails() []ports.CRSDetail {
	return []ports.CRSDetail{
		{Code: 4326, Name: "WGS 84"},
		{Code: 32643, Name: "WGS 84 / UTM zone 43N"},
		{Code: 3857, Name: "WGS 84 / Pseudo-Mercator"},
		{Code: 8857, Name: "WGS 84 / Equal Earth Greenwich"},
		{Code: 54034, Name: "World Cylindrical Equal Area"},
	}
}

func TestResolvePointStoresResult(t *testing.T) {
	store := session.NewMemoryStore()
	provider := epsgio.NewMockProvider(delhiDetails())

	coord := domain.Coordinate{Lat: 28.6, Lon: 77.2}
	out, err := ResolvePoint(context.Background(), "sess-1", coord, store, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Result.Projections) != 5 {
		t.Fatalf("expected 5 projections, got %d", len(out.Result.Projections))
	}
	if code, _ := out.Result.Projections.Lookup("UTM Zone 43N"); code != "EPSG:32643" {
		t.Fatalf("utm entry = %q, want EPSG:32643", code)
	}

	stored, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("stored result missing: %v", err)
	}
	if stored.Coordinate != coord {
		t.Fatalf("stored coordinate = %+v, want %+v", stored.Coordinate, coord)
	}

	if len(out.Details) != 5 {
		t.Fatalf("expected 5 details, got %d", len(out.Details))
	}
	// Details follow projection table order.
	if out.Details[0].Code != 4326 || out.Details[1].Code != 32643 {
		t.Fatalf("details out of order: %+v", out.Details)
	}
}

func TestResolvePointStoreFailure(t *testing.T) {
	coord := domain.Coordinate{Lat: 51.5, Lon: -0.1}
	_, err := ResolvePoint(context.Background(), "sess-1", coord, failStore{}, nil)
	if err == nil {
		t.Fatal("expected error when store save fails")
	}
}

func TestResolvePointEnrichmentFailureIsSoft(t *testing.T) {
	// Provider only knows one of the five codes.
	provider := epsgio.NewMockProvider([]ports.CRSDetail{{Code: 4326, Name: "WGS 84"}})

	out, err := ResolvePoint(context.Background(), "sess-1", domain.Coordinate{Lat: 51.5, Lon: -0.1}, nil, provider)
	if err != nil {
		t.Fatalf("enrichment failure must not fail resolution: %v", err)
	}
	if len(out.Result.Projections) != 5 {
		t.Fatalf("expected 5 projections, got %d", len(out.Result.Projections))
	}
	if len(out.Details) != 1 || out.Details[0].Code != 4326 {
		t.Fatalf("details = %+v, want only 4326", out.Details)
	}
}

func TestResolvePointPrefersBatchProvider(t *testing.T) {
	provider := &batchProvider{m: map[int]ports.CRSDetail{
		4326:  {Code: 4326, Name: "WGS 84"},
		32630: {Code: 32630, Name: "WGS 84 / UTM zone 30N"},
	}}

	out, err := ResolvePoint(context.Background(), "sess-1", domain.Coordinate{Lat: 51.5, Lon: -0.1}, nil, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one batched call, got %d", provider.calls)
	}
	if len(out.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(out.Details))
	}
}

func TestResolvePointWithoutDependencies(t *testing.T) {
	out, err := ResolvePoint(context.Background(), "", domain.Coordinate{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The origin is a legitimate coordinate for the resolver.
	if code, _ := out.Result.Projections.Lookup("UTM Zone 31N"); code != "EPSG:32631" {
		t.Fatalf("origin utm entry = %q, want EPSG:32631", code)
	}
}
