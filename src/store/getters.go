package store

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"k-stock-insight/src/models"
)

// unknownUpdate is shown while no health check has succeeded yet.
const unknownUpdate = "알 수 없음"

// Timestamp layouts accepted from the health endpoint. The backend sends
// local time without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// -----------------------------------------------------------------------------

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() models.MStoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := models.MStoreState{
		IsConnected: s.isConnected,
		LastUpdated: copyString(s.lastUpdated),
		Stats:       s.stats,
		Stocks:      slices.Clone(s.stocks),
		StocksTotal: s.stocksTotal,
		Sectors:     slices.Clone(s.sectors),
		Dashboard:   s.dashboard.Clone(),
		Loading:     maps.Clone(s.loading),
		Errors:      make(map[models.MCategory]*string, len(s.errors)),
	}
	if s.currentStock != nil {
		stock := s.currentStock.Clone()
		state.CurrentStock = &stock
	}
	for k, v := range s.errors {
		state.Errors[k] = copyString(v)
	}
	return state
}

// -----------------------------------------------------------------------------

// Loading reports whether an action of the category is in flight.
func (s *Store) Loading(cat models.MCategory) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[cat]
}

// Error returns the message in the category's error slot, nil when empty.
func (s *Store) Error(cat models.MCategory) *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyString(s.errors[cat])
}

// Stats returns the last stats snapshot.
func (s *Store) Stats() models.MStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Stocks returns the last stock list and its total.
func (s *Store) Stocks() ([]models.MStockSummary, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stocks), s.stocksTotal
}

// CurrentStock returns the last fetched stock detail, nil if none.
func (s *Store) CurrentStock() *models.MStockDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentStock == nil {
		return nil
	}
	stock := s.currentStock.Clone()
	return &stock
}

// Sectors returns the last sector list.
func (s *Store) Sectors() []models.MSector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sectors)
}

// Dashboard returns the last dashboard bundle.
func (s *Store) Dashboard() models.MDashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dashboard.Clone()
}

// -----------------------------------------------------------------------------
// Derived values
// -----------------------------------------------------------------------------

// IsHealthy reports the connectivity flag.
func (s *Store) IsHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// HasData reports whether the backend holds at least one stock.
func (s *Store) HasData() bool {
	return s.TotalStocks() > 0
}

// TotalStocks is the stock count of the last stats snapshot.
func (s *Store) TotalStocks() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.Stocks
}

// LastUpdateFormatted renders the last health timestamp the way a Korean
// locale does, e.g. "2024. 1. 15. 오후 3:04:05".
func (s *Store) LastUpdateFormatted() string {
	s.mu.RLock()
	last := copyString(s.lastUpdated)
	s.mu.RUnlock()

	if last == nil || *last == "" {
		return unknownUpdate
	}
	t, ok := parseTimestamp(*last)
	if !ok {
		return *last
	}
	return formatKorean(t)
}

// -----------------------------------------------------------------------------

func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return t.In(time.Local), true
		}
	}
	return time.Time{}, false
}

func formatKorean(t time.Time) string {
	period := "오전"
	if t.Hour() >= 12 {
		period = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute(), t.Second())
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
