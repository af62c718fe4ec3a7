package models

import (
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Investor type codes used by the backend.
var InvestorTypes = []string{
	"securities",
	"insurance",
	"investment_trust",
	"private_equity",
	"bank",
	"other_financial",
	"pension_fund",
	"institutional_total",
	"other_corporate",
	"individual",
	"foreign",
	"other_foreign",
}

// MInvestorTrend is one day of trading value for one investor type, in KRW.
type MInvestorTrend struct {
	Date         string          `json:"date"`
	InvestorType string          `json:"investor_type"`
	BuyValue     decimal.Decimal `json:"buy_value"`
	SellValue    decimal.Decimal `json:"sell_value"`
	NetValue     decimal.Decimal `json:"net_value"`
}

// MInvestorTrendSeries is the payload of GET /api/stocks/{ticker}/investor-trends.
type MInvestorTrendSeries struct {
	Ticker         string           `json:"ticker"`
	InvestorTrends []MInvestorTrend `json:"investor_trends"`
}

// MInvestorTotal is the accumulated net value per investor type
// reported with a stock detail.
type MInvestorTotal struct {
	InvestorType string          `json:"investor_type"`
	TotalNet     decimal.Decimal `json:"total_net"`
}

// NetByInvestor sums the net value of the series per investor type.
func (s MInvestorTrendSeries) NetByInvestor() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range s.InvestorTrends {
		totals[t.InvestorType] = totals[t.InvestorType].Add(t.NetValue)
	}
	return totals
}

// NetTotals returns NetByInvestor as a list in InvestorTypes order. Types the
// backend adds later follow in alphabetical order.
func (s MInvestorTrendSeries) NetTotals() []MInvestorTotal {
	totals := s.NetByInvestor()
	out := make([]MInvestorTotal, 0, len(totals))
	for _, typ := range InvestorTypes {
		if net, ok := totals[typ]; ok {
			out = append(out, MInvestorTotal{InvestorType: typ, TotalNet: net})
			delete(totals, typ)
		}
	}

	rest := make([]string, 0, len(totals))
	for typ := range totals {
		rest = append(rest, typ)
	}
	slices.Sort(rest)
	for _, typ := range rest {
		out = append(out, MInvestorTotal{InvestorType: typ, TotalNet: totals[typ]})
	}
	return out
}

// FormatKRW renders an amount in won, e.g. "₩1,234,000".
func FormatKRW(amount decimal.Decimal) string {
	// KRW has no minor unit, so the integer part is the whole amount
	return money.New(amount.Round(0).IntPart(), money.KRW).Display()
}
