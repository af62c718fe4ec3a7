package models

// MHealth is the payload of GET /api/health.
type MHealth struct {
	Status    string `json:"status"`
	Database  string `json:"database,omitempty"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// MDateRange bounds the daily price history held by the backend.
// Both ends are null while the price table is empty.
type MDateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// MStats is the payload of GET /api/stats.
type MStats struct {
	Stocks                 int64      `json:"stocks"`
	DailyPrices            int64      `json:"daily_prices"`
	SectorPrices           int64      `json:"sector_prices"`
	InvestorTrends         int64      `json:"investor_trends"`
	UniqueStocksWithPrices int64      `json:"unique_stocks_with_prices"`
	DateRange              MDateRange `json:"date_range"`
}
