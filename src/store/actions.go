package store

import (
	"context"
	"net/url"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/models"
)

// Backend endpoints, relative to the resolved base URL.
const (
	pathHealth    = "/api/health"
	pathStats     = "/api/stats"
	pathStocks    = "/api/stocks"
	pathSectors   = "/api/sectors"
	pathDashboard = "/api/dashboard"
)

func stockPath(ticker string) string {
	return pathStocks + "/" + url.PathEscape(ticker)
}

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

// CheckHealth queries the health endpoint. The store counts as connected only
// when the backend reports "healthy"; any failure marks it disconnected. No
// error slot is involved.
func (s *Store) CheckHealth(ctx context.Context) (models.MHealth, error) {
	var health models.MHealth

	body, err := s.api.Get(ctx, pathHealth, nil)
	if err == nil {
		err = decode(body, pathHealth, &health)
	}

	s.mu.Lock()
	if err != nil {
		s.isConnected = false
	} else {
		s.isConnected = health.Status == "healthy"
		ts := health.Timestamp
		s.lastUpdated = &ts
	}
	connected := s.isConnected
	s.mu.Unlock()

	if err != nil {
		s.emit(models.MStoreEvent{Kind: models.EventHealth, Message: helpers.ErrorMessage(err)})
		return models.MHealth{}, err
	}

	s.emit(models.MStoreEvent{Kind: models.EventHealth, Payload: health})
	s.Logger.Debug("Health: status=%s connected=%v", health.Status, connected)
	return health, nil
}

// -----------------------------------------------------------------------------
// Resource actions
// -----------------------------------------------------------------------------

// FetchStats replaces the stats snapshot.
func (s *Store) FetchStats(ctx context.Context) (models.MStats, error) {
	return fetch(ctx, s, models.CategoryStats, "", pathStats, nil, func(p models.MStats) {
		s.stats = p
	})
}

// FetchStocks replaces the stock list and its total. params are passed to the
// backend verbatim (limit, offset, market, search).
func (s *Store) FetchStocks(ctx context.Context, params map[string]string) (models.MStockList, error) {
	return fetch(ctx, s, models.CategoryStocks, "", pathStocks, params, func(p models.MStockList) {
		s.stocks = p.Stocks
		s.stocksTotal = p.Total
	})
}

// FetchStocksQuery is FetchStocks with typed filters.
func (s *Store) FetchStocksQuery(ctx context.Context, q models.MStockQuery) (models.MStockList, error) {
	return s.FetchStocks(ctx, q.Params())
}

// FetchStock replaces the current stock with the detail of ticker.
func (s *Store) FetchStock(ctx context.Context, ticker string) (models.MStockDetail, error) {
	return fetch(ctx, s, models.CategoryStock, ticker, stockPath(ticker), nil, func(p models.MStockDetail) {
		s.currentStock = &p
	})
}

// GetStockDetail is an alias of FetchStock.
func (s *Store) GetStockDetail(ctx context.Context, ticker string) (models.MStockDetail, error) {
	return s.FetchStock(ctx, ticker)
}

// FetchStockPrices returns the daily prices of ticker. The series is not
// retained by the store.
func (s *Store) FetchStockPrices(ctx context.Context, ticker string, params map[string]string) (models.MPriceSeries, error) {
	return fetch[models.MPriceSeries](ctx, s, models.CategoryPrices, ticker, stockPath(ticker)+"/prices", params, nil)
}

// FetchStockInvestorTrends returns the investor trends of ticker. The series
// is not retained by the store.
func (s *Store) FetchStockInvestorTrends(ctx context.Context, ticker string, params map[string]string) (models.MInvestorTrendSeries, error) {
	return fetch[models.MInvestorTrendSeries](ctx, s, models.CategoryInvestors, ticker, stockPath(ticker)+"/investor-trends", params, nil)
}

// FetchSectors replaces the sector list.
func (s *Store) FetchSectors(ctx context.Context) (models.MSectorList, error) {
	return fetch(ctx, s, models.CategorySectors, "", pathSectors, nil, func(p models.MSectorList) {
		s.sectors = p.Sectors
	})
}

// GetSectors fetches the sectors and returns the stored list.
func (s *Store) GetSectors(ctx context.Context) ([]models.MSector, error) {
	if _, err := s.FetchSectors(ctx); err != nil {
		return nil, err
	}
	return s.Sectors(), nil
}

// FetchDashboard replaces the dashboard bundle.
func (s *Store) FetchDashboard(ctx context.Context) (models.MDashboard, error) {
	return fetch(ctx, s, models.CategoryDashboard, "", pathDashboard, nil, func(p models.MDashboard) {
		s.dashboard = p
	})
}

// -----------------------------------------------------------------------------
// Housekeeping
// -----------------------------------------------------------------------------

// ClearError nulls the error slot of each given category, or every slot when
// called without arguments. Unknown categories are ignored.
func (s *Store) ClearError(categories ...models.MCategory) {
	s.mu.Lock()
	if len(categories) == 0 {
		for c := range s.errors {
			s.errors[c] = nil
		}
	} else {
		for _, c := range categories {
			if _, ok := s.errors[c]; ok {
				s.errors[c] = nil
			}
		}
	}
	s.mu.Unlock()

	if len(categories) == 0 {
		s.emit(models.MStoreEvent{Kind: models.EventCleared})
		return
	}
	for _, c := range categories {
		s.emit(models.MStoreEvent{Category: c, Kind: models.EventCleared})
	}
}

// RefreshAll runs the health check then the stats fetch. Failures are logged
// and reported as false, never returned.
func (s *Store) RefreshAll(ctx context.Context) bool {
	if _, err := s.CheckHealth(ctx); err != nil {
		s.errs.Handle(err, "refresh all (health)")
		return false
	}
	if _, err := s.FetchStats(ctx); err != nil {
		s.errs.Handle(err, "refresh all (stats)")
		return false
	}
	return true
}
