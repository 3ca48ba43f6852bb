package dto

type DMSRequest struct {
	Degrees   float64 `json:"degrees"`
	Minutes   float64 `json:"minutes"`
	Seconds   float64 `json:"seconds"`
	Direction string  `json:"direction"`
}

type ResolveRequest struct {
	Lat    float64     `json:"lat"`
	Lon    float64     `json:"lon"`
	LatDMS *DMSRequest `json:"lat_dms"`
	LonDMS *DMSRequest `json:"lon_dms"`
}

type ProjectionEntryResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
	URL  string `json:"url"`
}

type CRSDetailResponse struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Proj4 string `json:"proj4"`
	Unit  string `json:"unit"`
	Area  string `json:"area"`
}

type ResolveResponse struct {
	Lat         float64                   `json:"lat"`
	Lon         float64                   `json:"lon"`
	UTMZone     string                    `json:"utm_zone"`
	EPSGCode    int                       `json:"epsg_code"`
	Projections []ProjectionEntryResponse `json:"projections"`
	Details     []CRSDetailResponse       `json:"details"`
}
