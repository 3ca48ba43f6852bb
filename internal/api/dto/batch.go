package dto

import "encoding/json"

// CoordValue accepts either a JSON number or a JSON string and keeps the
// raw text, so unparseable cells flow into per-row errors instead of
// failing the whole request.
type CoordValue string

func (v *CoordValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = CoordValue(s)
		return nil
	}
	*v = CoordValue(b)
	return nil
}

type BatchRecordRequest struct {
	Lat CoordValue `json:"lat"`
	Lon CoordValue `json:"lon"`
}

type BatchRequest struct {
	Rows []BatchRecordRequest `json:"rows"`
}

type BatchRowResponse struct {
	Lat      string `json:"lat"`
	Lon      string `json:"lon"`
	UTMZone  string `json:"utm_zone"`
	EPSGCode int    `json:"epsg_code"`
	EPSGLink string `json:"epsg_link"`
	Error    string `json:"error"`
}

type BatchResponse struct {
	Processed int                `json:"processed"`
	Failed    int                `json:"failed"`
	Rows      []BatchRowResponse `json:"rows"`
}
