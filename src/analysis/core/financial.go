package core

import (
	"k-stock-insight/src/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// -----------------------------------------------------------------------------

// ComputeOHLCV folds daily rows into one bar. Rows are ordered newest first,
// as the backend returns them.
func ComputeOHLCV(rows []models.MDailyPrice) models.MOHLCV {
	if len(rows) == 0 {
		return models.MOHLCV{}
	}

	bar := models.MOHLCV{
		Open:  rows[len(rows)-1].Open,
		High:  rows[0].High,
		Low:   rows[0].Low,
		Close: rows[0].Close,
	}

	sum := decimal.Zero
	for _, r := range rows {
		if r.High.GreaterThan(bar.High) {
			bar.High = r.High
		}
		if r.Low.LessThan(bar.Low) {
			bar.Low = r.Low
		}
		bar.Volume += r.Volume
		sum = sum.Add(r.Close)
	}
	bar.AvgClose = sum.Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
	return bar
}

// -----------------------------------------------------------------------------

// ChangePercent returns (current - previous) / previous in percent, rounded
// to two places. Zero when previous is zero.
func ChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// -----------------------------------------------------------------------------

// VolumeRatio compares a day's volume with an average volume.
func VolumeRatio(current, avg float64) float64 {
	if avg <= 0 {
		if current == 0 {
			return 1.0
		}
		return current
	}
	return current / avg
}
