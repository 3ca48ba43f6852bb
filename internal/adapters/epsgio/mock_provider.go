package epsgio

import (
	"context"
	"fmt"

	"epsg-finder-service/internal/ports"
)

type MockProvider struct {
	m map[int]ports.CRSDetail
}

func NewMockProvider(details []ports.CRSDetail) *MockProvider {
	m := make(map[int]ports.CRSDetail, len(details))
	for _, d := range details {
		m[d.Code] = d
	}
	return &MockProvider{m: m}
}

func (p *MockProvider) Describe(ctx context.Context, code int) (ports.CRSDetail, error) {
	d, ok := p.m[code]
	if !ok {
		return ports.CRSDetail{}, fmt.Errorf("missing crs detail for code %d", code)
	}

	return d, nil
}
