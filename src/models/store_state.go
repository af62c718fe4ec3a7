package models

import "time"

// -----------------------------------------------------------------------------
// Resource categories
// -----------------------------------------------------------------------------

// MCategory names an independent axis of loading/error state.
type MCategory string

const (
	CategoryStats     MCategory = "stats"
	CategoryStocks    MCategory = "stocks"
	CategoryStock     MCategory = "stock"
	CategorySectors   MCategory = "sectors"
	CategoryDashboard MCategory = "dashboard"
	CategoryPrices    MCategory = "prices"
	CategoryInvestors MCategory = "investors"
)

// Categories lists every category in display order.
var Categories = []MCategory{
	CategoryStats,
	CategoryStocks,
	CategoryStock,
	CategorySectors,
	CategoryDashboard,
	CategoryPrices,
	CategoryInvestors,
}

// IsValid reports whether c is one of the known categories.
func (c MCategory) IsValid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Store State (copy handed to readers)
// -----------------------------------------------------------------------------

type MStoreState struct {
	IsConnected  bool                  `json:"is_connected"`
	LastUpdated  *string               `json:"last_updated"`
	Stats        MStats                `json:"stats"`
	Stocks       []MStockSummary       `json:"stocks"`
	StocksTotal  int64                 `json:"stocks_total"`
	CurrentStock *MStockDetail         `json:"current_stock"`
	Sectors      []MSector             `json:"sectors"`
	Dashboard    MDashboard            `json:"dashboard_data"`
	Loading      map[MCategory]bool    `json:"loading"`
	Errors       map[MCategory]*string `json:"errors"`
}

// -----------------------------------------------------------------------------
// Store Events
// -----------------------------------------------------------------------------

type MEventKind string

const (
	EventLoading MEventKind = "loading"
	EventSuccess MEventKind = "success"
	EventFailure MEventKind = "failure"
	EventCleared MEventKind = "cleared"
	EventHealth  MEventKind = "health"
)

// MStoreEvent is emitted after every store mutation. Category is empty for
// health events and for clearing all error slots at once.
type MStoreEvent struct {
	Category MCategory   `json:"category,omitempty"`
	Key      string      `json:"key,omitempty"` // ticker for per-stock categories
	Kind     MEventKind  `json:"kind"`
	Message  string      `json:"message,omitempty"`
	Payload  interface{} `json:"-"`
	At       time.Time   `json:"at"`
}

// -----------------------------------------------------------------------------
// Archived snapshot
// -----------------------------------------------------------------------------

// MSnapshot is one successful payload as stored by the archive.
type MSnapshot struct {
	Category  MCategory `json:"category"`
	Key       string    `json:"key"` // ticker for per-stock categories, empty otherwise
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
}

// -----------------------------------------------------------------------------
// Relay messages
// -----------------------------------------------------------------------------

// MStateMessage is pushed to WebSocket clients: INITIAL on connect, UPDATE
// after every store event.
type MStateMessage struct {
	Type  string       `json:"type"`
	Event *MStoreEvent `json:"event,omitempty"`
	State MStoreState  `json:"state"`
}

// MClientCommand is sent by WebSocket clients.
type MClientCommand struct {
	Command  string    `json:"command"` // "state", "refresh" or "clear_error"
	Category MCategory `json:"category,omitempty"`
}
