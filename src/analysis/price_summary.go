// Package analysis derives summary statistics from fetched price series.
package analysis

import (
	"k-stock-insight/src/analysis/core"
	"k-stock-insight/src/models"
)

// -----------------------------------------------------------------------------

// SummarizePrices computes the period bar, the change over the period and
// how unusual the newest day is compared with the rest of the series.
func SummarizePrices(series models.MPriceSeries) models.MPriceSummary {
	summary := models.MPriceSummary{
		Ticker: series.Ticker,
		Days:   len(series.Prices),
	}
	if len(series.Prices) == 0 {
		return summary
	}

	rows := series.Prices
	summary.Bar = core.ComputeOHLCV(rows)
	summary.Change = series.Change()
	summary.ChangePercent = core.ChangePercent(rows[0].Close, rows[len(rows)-1].Close)

	closes := make([]float64, len(rows))
	volumes := make([]float64, len(rows))
	for i, r := range rows {
		closes[i] = r.Close.InexactFloat64()
		volumes[i] = float64(r.Volume)
	}

	mean, std := core.MeanStd(closes)
	summary.CloseStdDev = std
	summary.CloseZScore = core.ZScore(closes[0], mean, std)
	summary.PriceVolumeCorrelation = core.Correlation(closes, volumes)

	// newest day against the average of the days before it
	if len(volumes) > 1 {
		avgVol, _ := core.MeanStd(volumes[1:])
		summary.VolumeRatio = core.VolumeRatio(volumes[0], avgVol)
	} else {
		summary.VolumeRatio = 1.0
	}

	return summary
}
