package models

import "github.com/shopspring/decimal"

// MSector is the latest close of one sector index.
type MSector struct {
	SectorCode string          `json:"sector_code"`
	SectorName string          `json:"sector_name"`
	Date       string          `json:"date"`
	Close      decimal.Decimal `json:"close"`
	Volume     int64           `json:"volume"`
}

// MSectorList is the payload of GET /api/sectors.
type MSectorList struct {
	Sectors []MSector `json:"sectors"`
}

// MDashboard is the payload of GET /api/dashboard. The store treats it as
// opaque and only replaces it as a whole.
type MDashboard map[string]interface{}

// Clone deep-copies the nested maps and slices decoded from JSON.
func (d MDashboard) Clone() MDashboard {
	if d == nil {
		return nil
	}
	return cloneJSON(map[string]interface{}(d)).(map[string]interface{})
}

func cloneJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = cloneJSON(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = cloneJSON(e)
		}
		return out
	default:
		return v
	}
}
