package ports

import "context"

// One row of the reference projection catalog.
type CatalogEntry struct {
	Position    int
	Name        string
	Code        string
	Description string
	InfoURL     string
}

// Port: a boundary for retrieving the seeded projection catalog.
type CRSCatalog interface {
	// Retrieve all catalog entries in display order.
	List(ctx context.Context) ([]CatalogEntry, error)
}
