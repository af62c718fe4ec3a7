package analysis

import (
	"math"
	"testing"

	"k-stock-insight/src/models"

	"github.com/shopspring/decimal"
)

func row(date string, open, high, low, close int64, volume int64) models.MDailyPrice {
	return models.MDailyPrice{
		Date:   date,
		Open:   decimal.NewFromInt(open),
		High:   decimal.NewFromInt(high),
		Low:    decimal.NewFromInt(low),
		Close:  decimal.NewFromInt(close),
		Volume: volume,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

// -----------------------------------------------------------------------------

func TestSummarizePrices(t *testing.T) {
	series := models.MPriceSeries{
		Ticker: "005930",
		Prices: []models.MDailyPrice{
			row("2024-01-17", 106, 112, 104, 110, 300),
			row("2024-01-16", 101, 107, 100, 105, 100),
			row("2024-01-15", 99, 102, 97, 100, 100),
		},
	}

	got := SummarizePrices(series)

	if got.Ticker != "005930" || got.Days != 3 {
		t.Fatalf("ticker/days = %s/%d", got.Ticker, got.Days)
	}

	decimals := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{name: "open", got: got.Bar.Open, want: 99},
		{name: "high", got: got.Bar.High, want: 112},
		{name: "low", got: got.Bar.Low, want: 97},
		{name: "close", got: got.Bar.Close, want: 110},
		{name: "avg close", got: got.Bar.AvgClose, want: 105},
		{name: "change", got: got.Change, want: 10},
		{name: "change percent", got: got.ChangePercent, want: 10},
	}
	for _, d := range decimals {
		if !d.got.Equal(decimal.NewFromInt(d.want)) {
			t.Errorf("%s = %s; want %d", d.name, d.got, d.want)
		}
	}

	if got.Bar.Volume != 500 {
		t.Errorf("volume = %d; want 500", got.Bar.Volume)
	}
	if !near(got.VolumeRatio, 3) {
		t.Errorf("VolumeRatio = %v; want 3", got.VolumeRatio)
	}
	if !near(got.CloseStdDev, 4.0825) {
		t.Errorf("CloseStdDev = %v; want 4.0825", got.CloseStdDev)
	}
	if !near(got.CloseZScore, 1.2247) {
		t.Errorf("CloseZScore = %v; want 1.2247", got.CloseZScore)
	}
	if !near(got.PriceVolumeCorrelation, 0.8660) {
		t.Errorf("PriceVolumeCorrelation = %v; want 0.8660", got.PriceVolumeCorrelation)
	}
}

func TestSummarizeShortSeries(t *testing.T) {
	empty := SummarizePrices(models.MPriceSeries{Ticker: "000660"})
	if empty.Days != 0 || !empty.Bar.Close.IsZero() {
		t.Fatalf("empty summary = %+v", empty)
	}

	single := SummarizePrices(models.MPriceSeries{
		Ticker: "000660",
		Prices: []models.MDailyPrice{row("2024-01-15", 100, 101, 99, 100, 50)},
	})
	if single.VolumeRatio != 1.0 || single.CloseZScore != 0 || !single.ChangePercent.IsZero() {
		t.Fatalf("single-day summary = %+v", single)
	}
}
