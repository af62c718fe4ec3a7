package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"k-stock-insight/src/analysis"
	"k-stock-insight/src/models"
	"k-stock-insight/src/store"

	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&healthCmd{},
	&statsCmd{},
	&stocksCmd{},
	&stockCmd{},
	&pricesCmd{},
	&investorsCmd{},
	&sectorsCmd{},
	&dashboardCmd{},
	&refreshCmd{},
}

// -----------------------------------------------------------------------------

type healthCmd struct{}

func (*healthCmd) Name() string             { return "health" }
func (*healthCmd) Synopsis() string         { return "check backend health" }
func (*healthCmd) Usage() string            { return "kstock health\n" }
func (*healthCmd) SetFlags(f *flag.FlagSet) {}

func (*healthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(s *store.Store) (interface{}, error) {
		h, err := s.CheckHealth(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"health":      h,
			"connected":   s.IsHealthy(),
			"last_update": s.LastUpdateFormatted(),
		}, nil
	})
}

// -----------------------------------------------------------------------------

type statsCmd struct{}

func (*statsCmd) Name() string             { return "stats" }
func (*statsCmd) Synopsis() string         { return "show database statistics" }
func (*statsCmd) Usage() string            { return "kstock stats\n" }
func (*statsCmd) SetFlags(f *flag.FlagSet) {}

func (*statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(s *store.Store) (interface{}, error) {
		return s.FetchStats(ctx)
	})
}

// -----------------------------------------------------------------------------

type stocksCmd struct {
	query models.MStockQuery
}

func (*stocksCmd) Name() string     { return "stocks" }
func (*stocksCmd) Synopsis() string { return "list stocks" }
func (*stocksCmd) Usage() string {
	return `kstock stocks [-limit <n>] [-offset <n>] [-market KOSPI|KOSDAQ] [-search <text>]

  Lists stocks, filtered by market or by a name/ticker search.
`
}

func (c *stocksCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.query.Limit, "limit", 0, "maximum number of stocks (backend default when 0)")
	f.IntVar(&c.query.Offset, "offset", 0, "number of stocks to skip")
	f.StringVar(&c.query.Market, "market", "", "KOSPI or KOSDAQ")
	f.StringVar(&c.query.Search, "search", "", "substring of the name or ticker")
}

func (c *stocksCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(s *store.Store) (interface{}, error) {
		return s.FetchStocksQuery(ctx, c.query)
	})
}

// -----------------------------------------------------------------------------

type stockCmd struct{}

func (*stockCmd) Name() string             { return "stock" }
func (*stockCmd) Synopsis() string         { return "show the detail of one stock" }
func (*stockCmd) Usage() string            { return "kstock stock <ticker>\n" }
func (*stockCmd) SetFlags(f *flag.FlagSet) {}

func (*stockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker, ok := tickerArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(func(s *store.Store) (interface{}, error) {
		return s.GetStockDetail(ctx, ticker)
	})
}

// -----------------------------------------------------------------------------

type pricesCmd struct {
	query   models.MRangeQuery
	summary bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show daily prices of one stock" }
func (*pricesCmd) Usage() string {
	return `kstock prices [-start YYYY-MM-DD] [-end YYYY-MM-DD] [-limit <n>] [-summary] <ticker>
  With -summary, prints the period bar and volatility figures instead of rows.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	setRangeFlags(f, &c.query)
	f.BoolVar(&c.summary, "summary", false, "print period statistics instead of daily rows")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker, ok := tickerArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(func(s *store.Store) (interface{}, error) {
		series, err := s.FetchStockPrices(ctx, ticker, c.query.Params())
		if err != nil {
			return nil, err
		}
		if c.summary {
			return analysis.SummarizePrices(series), nil
		}
		return map[string]interface{}{
			"ticker": series.Ticker,
			"prices": series.Prices,
			"change": series.Change(),
		}, nil
	})
}

// -----------------------------------------------------------------------------

type investorsCmd struct {
	query   models.MRangeQuery
	summary bool
}

func (*investorsCmd) Name() string     { return "investors" }
func (*investorsCmd) Synopsis() string { return "show investor trends of one stock" }
func (*investorsCmd) Usage() string {
	return `kstock investors [-start YYYY-MM-DD] [-end YYYY-MM-DD] [-limit <n>] [-summary] <ticker>

  Prints daily trading values per investor type. With -summary, prints the
  net value per investor type over the period, formatted in won.
`
}

func (c *investorsCmd) SetFlags(f *flag.FlagSet) {
	setRangeFlags(f, &c.query)
	f.BoolVar(&c.summary, "summary", false, "print net totals per investor type")
}

func (c *investorsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker, ok := tickerArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(func(s *store.Store) (interface{}, error) {
		series, err := s.FetchStockInvestorTrends(ctx, ticker, c.query.Params())
		if err != nil || !c.summary {
			return series, err
		}

		type netLine struct {
			InvestorType string `json:"investor_type"`
			Net          string `json:"net"`
		}
		totals := series.NetTotals()
		summary := make([]netLine, 0, len(totals))
		for _, t := range totals {
			summary = append(summary, netLine{InvestorType: t.InvestorType, Net: models.FormatKRW(t.TotalNet)})
		}
		return summary, nil
	})
}

// -----------------------------------------------------------------------------

type sectorsCmd struct{}

func (*sectorsCmd) Name() string             { return "sectors" }
func (*sectorsCmd) Synopsis() string         { return "list sector indices" }
func (*sectorsCmd) Usage() string            { return "kstock sectors\n" }
func (*sectorsCmd) SetFlags(f *flag.FlagSet) {}

func (*sectorsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(s *store.Store) (interface{}, error) {
		return s.GetSectors(ctx)
	})
}

// -----------------------------------------------------------------------------

type dashboardCmd struct{}

func (*dashboardCmd) Name() string             { return "dashboard" }
func (*dashboardCmd) Synopsis() string         { return "show the dashboard bundle" }
func (*dashboardCmd) Usage() string            { return "kstock dashboard\n" }
func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(s *store.Store) (interface{}, error) {
		return s.FetchDashboard(ctx)
	})
}

// -----------------------------------------------------------------------------

type refreshCmd struct{}

func (*refreshCmd) Name() string             { return "refresh" }
func (*refreshCmd) Synopsis() string         { return "run the health check and the stats fetch" }
func (*refreshCmd) Usage() string            { return "kstock refresh\n" }
func (*refreshCmd) SetFlags(f *flag.FlagSet) {}

func (*refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ok := s.RefreshAll(ctx)
	status := printJSON(map[string]interface{}{
		"success":      ok,
		"connected":    s.IsHealthy(),
		"last_update":  s.LastUpdateFormatted(),
		"total_stocks": s.TotalStocks(),
		"errors":       s.Snapshot().Errors,
	})
	if !ok {
		return subcommands.ExitFailure
	}
	return status
}

// -----------------------------------------------------------------------------

func setRangeFlags(f *flag.FlagSet, q *models.MRangeQuery) {
	f.StringVar(&q.StartDate, "start", "", "first date, YYYY-MM-DD")
	f.StringVar(&q.EndDate, "end", "", "last date, YYYY-MM-DD")
	f.IntVar(&q.Limit, "limit", 0, "maximum number of rows (backend default when 0)")
}

func tickerArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one ticker")
		return "", false
	}
	return f.Arg(0), true
}
