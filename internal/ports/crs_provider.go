package ports

import "context"

// Reference metadata for one coordinate reference system.
type CRSDetail struct {
	Code  int
	Name  string
	Kind  string
	Proj4 string
	Unit  string
	Area  string
}

// Contract for retrieving CRS reference metadata by EPSG code.
type CRSProvider interface {
	// Return reference metadata for a single EPSG code.
	Describe(ctx context.Context, code int) (CRSDetail, error)
}

// Optional extension of CRSProvider that supports batched lookups.
type CRSBatchProvider interface {
	CRSProvider
	// Return metadata for many EPSG codes. Codes the upstream registry
	// does not know are absent from the result, not an error.
	DescribeMany(ctx context.Context, codes []int) (map[int]CRSDetail, error)
}

// Persistent cache for CRS reference metadata keyed by EPSG code.
type CRSDetailCache interface {
	// Fetch cached details for many codes. Misses are absent from the map.
	GetMany(ctx context.Context, codes []int) (map[int]CRSDetail, error)
	// Store many details keyed by EPSG code.
	PutMany(ctx context.Context, details map[int]CRSDetail) error
}
