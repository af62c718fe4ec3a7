package models

import "slices"

// MStockSummary is one row of the stock listing.
type MStockSummary struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	Market     string  `json:"market"` // "KOSPI" or "KOSDAQ"
	SectorName *string `json:"sector_name"`
}

// MStockList is the payload of GET /api/stocks.
type MStockList struct {
	Stocks []MStockSummary `json:"stocks"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// MStockInfo is the master record of a single stock.
type MStockInfo struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	Market     string  `json:"market"`
	ListedDate *string `json:"listed_date"`
	SectorName *string `json:"sector_name"`
}

// MStockDetail is the payload of GET /api/stocks/{ticker}.
type MStockDetail struct {
	Stock          MStockInfo       `json:"stock"`
	RecentPrices   []MDailyPrice    `json:"recent_prices"`
	InvestorTrends []MInvestorTotal `json:"investor_trends"`
}

// Clone returns a copy that shares no slices with d.
func (d MStockDetail) Clone() MStockDetail {
	d.Stock.ListedDate = cloneString(d.Stock.ListedDate)
	d.Stock.SectorName = cloneString(d.Stock.SectorName)
	d.RecentPrices = slices.Clone(d.RecentPrices)
	d.InvestorTrends = slices.Clone(d.InvestorTrends)
	return d
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
