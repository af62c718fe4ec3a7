// Package store holds the client-side state of the K-Stock Insight backend:
// fetched data, one loading flag and one error slot per resource category,
// and the connectivity state maintained by the health check.
//
// A Store is an explicit object built once at startup and handed to whatever
// composes the outer surfaces. It is safe for concurrent use, but concurrent
// calls to the same action are neither prevented nor coalesced: the response
// that settles last overwrites the shared state.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
)

// Store is the API store.
type Store struct {
	api    interfaces.INetworkManager
	Logger *logger.Logger
	errs   *helpers.ErrorHandler
	now    func() time.Time

	mu           sync.RWMutex
	isConnected  bool
	lastUpdated  *string
	stats        models.MStats
	stocks       []models.MStockSummary
	stocksTotal  int64
	currentStock *models.MStockDetail
	sectors      []models.MSector
	dashboard    models.MDashboard
	loading      map[models.MCategory]bool
	errors       map[models.MCategory]*string

	listenersMu sync.RWMutex
	listeners   []func(models.MStoreEvent)
}

// -----------------------------------------------------------------------------

// New creates a store issuing its requests through api.
func New(api interfaces.INetworkManager, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewLogger(nil, "APIStore")
	}

	s := &Store{
		api:       api,
		Logger:    log,
		errs:      helpers.NewErrorHandler(log),
		now:       time.Now,
		stocks:    []models.MStockSummary{},
		sectors:   []models.MSector{},
		dashboard: models.MDashboard{},
		loading:   make(map[models.MCategory]bool, len(models.Categories)),
		errors:    make(map[models.MCategory]*string, len(models.Categories)),
	}
	for _, c := range models.Categories {
		s.loading[c] = false
		s.errors[c] = nil
	}
	return s
}

// -----------------------------------------------------------------------------
// Listeners
// -----------------------------------------------------------------------------

// AddListener registers fn to be called after every state change. Listeners
// run synchronously on the goroutine that changed the state, after the store
// lock is released, so they must not block.
func (s *Store) AddListener(fn func(models.MStoreEvent)) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *Store) emit(ev models.MStoreEvent) {
	ev.At = s.now()

	s.listenersMu.RLock()
	listeners := make([]func(models.MStoreEvent), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// -----------------------------------------------------------------------------
// Per-category transitions
// -----------------------------------------------------------------------------

func (s *Store) begin(cat models.MCategory) {
	s.mu.Lock()
	s.errors[cat] = nil
	s.loading[cat] = true
	s.mu.Unlock()

	s.emit(models.MStoreEvent{Category: cat, Kind: models.EventLoading})
}

func (s *Store) succeed(cat models.MCategory, key string, apply func(), payload interface{}) {
	s.mu.Lock()
	if apply != nil {
		apply()
	}
	s.loading[cat] = false
	s.mu.Unlock()

	s.emit(models.MStoreEvent{Category: cat, Key: key, Kind: models.EventSuccess, Payload: payload})
}

func (s *Store) fail(cat models.MCategory, err error) {
	msg := helpers.ErrorMessage(err)

	s.mu.Lock()
	s.errors[cat] = &msg
	s.loading[cat] = false
	s.mu.Unlock()

	s.emit(models.MStoreEvent{Category: cat, Kind: models.EventFailure, Message: msg})
}

// -----------------------------------------------------------------------------

// fetch runs the uniform action contract for one category: clear the error
// slot, raise the loading flag, GET path, then either apply the decoded
// payload or record the normalized error. The flag is lowered either way.
// key names the stock for per-ticker categories. apply runs under the store
// lock.
func fetch[T any](ctx context.Context, s *Store, cat models.MCategory, key, path string, params map[string]string, apply func(T)) (T, error) {
	var payload T

	s.begin(cat)

	body, err := s.api.Get(ctx, path, params)
	if err == nil {
		err = decode(body, path, &payload)
	}
	if err != nil {
		s.fail(cat, err)
		var zero T
		return zero, err
	}

	var applyFn func()
	if apply != nil {
		applyFn = func() { apply(payload) }
	}
	s.succeed(cat, key, applyFn, payload)
	return payload, nil
}

// -----------------------------------------------------------------------------

func decode(body []byte, path string, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &helpers.KStockError{Message: "failed to decode " + path, Cause: err}
	}
	return nil
}
