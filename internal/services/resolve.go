package services

import (
	"context"
	"fmt"
	"log"

	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/ports"
)

// ResolveOutcome is one point resolution plus any CRS reference metadata
// the registry could supply for its projection table.
type ResolveOutcome struct {
	Result  domain.ResolutionResult
	Details []ports.CRSDetail
}

// ResolvePoint resolves a coordinate, stores the result in the session
// slot, and enriches the projection table with registry metadata.
//
// Store and provider are both optional. A store write failure fails the
// call: the stored result backs later retrieval, so silently dropping it
// would leave the session stale. Enrichment failures only log; the
// resolution itself is still authoritative without registry metadata.
func ResolvePoint(
	ctx context.Context,
	sessionID string,
	coord domain.Coordinate,
	store ports.ResultStore,
	crs ports.CRSProvider,
) (ResolveOutcome, error) {
	res := domain.Resolve(coord)

	if store != nil {
		if err := store.Save(ctx, sessionID, res); err != nil {
			return ResolveOutcome{}, fmt.Errorf("resolve point: save result: %w", err)
		}
	}

	out := ResolveOutcome{Result: res}
	if crs == nil {
		return out, nil
	}

	codes := res.Projections.Codes()

	// Prefer a single many-code lookup when supported to reduce external
	// registry calls.
	if bp, ok := crs.(ports.CRSBatchProvider); ok {
		details, err := bp.DescribeMany(ctx, codes)
		if err != nil {
			log.Printf("crs enrichment failed: %v", err)
			return out, nil
		}
		for _, code := range codes {
			if d, ok := details[code]; ok {
				out.Details = append(out.Details, d)
			}
		}
		return out, nil
	}

	for _, code := range codes {
		d, err := crs.Describe(ctx, code)
		if err != nil {
			log.Printf("crs enrichment failed for code=%d: %v", code, err)
			continue
		}
		out.Details = append(out.Details, d)
	}
	return out, nil
}
