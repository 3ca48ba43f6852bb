package dto

type CatalogEntryResponse struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	InfoURL     string `json:"info_url"`
}

type ListCatalogResponse struct {
	Projections []CatalogEntryResponse `json:"projections"`
}
