package models

import "github.com/shopspring/decimal"

// MDailyPrice is one OHLCV row. Prices are kept as exact decimals since the
// backend serialises NUMERIC columns.
type MDailyPrice struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// MPriceSeries is the payload of GET /api/stocks/{ticker}/prices.
// Rows are ordered newest first.
type MPriceSeries struct {
	Ticker string        `json:"ticker"`
	Prices []MDailyPrice `json:"prices"`
}

// Change returns the close-to-close change between the newest and the
// oldest row of the series.
func (s MPriceSeries) Change() decimal.Decimal {
	if len(s.Prices) < 2 {
		return decimal.Zero
	}
	return s.Prices[0].Close.Sub(s.Prices[len(s.Prices)-1].Close)
}

// MOHLCV is a set of daily rows folded into one bar.
type MOHLCV struct {
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	Volume   int64           `json:"volume"`
	AvgClose decimal.Decimal `json:"avg_close"`
}

// MPriceSummary describes a price series as a whole.
type MPriceSummary struct {
	Ticker                 string          `json:"ticker"`
	Days                   int             `json:"days"`
	Bar                    MOHLCV          `json:"bar"`
	Change                 decimal.Decimal `json:"change"`
	ChangePercent          decimal.Decimal `json:"change_percent"`
	CloseStdDev            float64         `json:"close_std_dev"`
	CloseZScore            float64         `json:"close_z_score"`
	VolumeRatio            float64         `json:"volume_ratio"`
	PriceVolumeCorrelation float64         `json:"price_volume_correlation"`
}
