package models

import "strconv"

// MStockQuery holds the filters accepted by GET /api/stocks. Zero values are
// left out so the backend defaults apply.
type MStockQuery struct {
	Limit  int
	Offset int
	Market string
	Search string
}

// Params converts the query into request parameters.
func (q MStockQuery) Params() map[string]string {
	params := make(map[string]string)
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Offset > 0 {
		params["offset"] = strconv.Itoa(q.Offset)
	}
	if q.Market != "" {
		params["market"] = q.Market
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	return params
}

// MRangeQuery holds the date filters accepted by the price and investor
// trend endpoints. Dates use the YYYY-MM-DD layout.
type MRangeQuery struct {
	StartDate string
	EndDate   string
	Limit     int
}

// Params converts the query into request parameters.
func (q MRangeQuery) Params() map[string]string {
	params := make(map[string]string)
	if q.StartDate != "" {
		params["start_date"] = q.StartDate
	}
	if q.EndDate != "" {
		params["end_date"] = q.EndDate
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	return params
}
