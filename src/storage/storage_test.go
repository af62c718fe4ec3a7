package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
)

func testLogger() *logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "test")
}

func newTestSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	cfg := &models.MConfig{Storage: models.MStorageConfig{
		Enabled:       true,
		DBType:        "sqlite",
		DBPath:        ":memory:",
		RetentionDays: 30,
	}}
	db, err := NewSQLiteDB(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewSQLiteDB() error = %v", err)
	}
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// -----------------------------------------------------------------------------

func TestSQLiteLatestSnapshot(t *testing.T) {
	db := newTestSQLite(t)
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	saves := []models.MSnapshot{
		{Category: models.CategoryStats, Payload: []byte(`{"stocks":1}`), FetchedAt: base},
		{Category: models.CategoryStats, Payload: []byte(`{"stocks":2}`), FetchedAt: base.Add(time.Minute)},
		{Category: models.CategoryStock, Key: "005930", Payload: []byte(`{"name":"삼성전자"}`), FetchedAt: base},
		{Category: models.CategoryStock, Key: "035720", Payload: []byte(`{"name":"카카오"}`), FetchedAt: base.Add(time.Hour)},
	}
	for _, s := range saves {
		if err := db.SaveSnapshot(s); err != nil {
			t.Fatalf("SaveSnapshot(%s) error = %v", s.Category, err)
		}
	}

	tests := []struct {
		name        string
		category    models.MCategory
		key         string
		wantOK      bool
		wantPayload string
	}{
		{name: "newest wins", category: models.CategoryStats, wantOK: true, wantPayload: `{"stocks":2}`},
		{name: "keyed", category: models.CategoryStock, key: "005930", wantOK: true, wantPayload: `{"name":"삼성전자"}`},
		{name: "missing key", category: models.CategoryStock, key: "000660"},
		{name: "missing category", category: models.CategorySectors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := db.LatestSnapshot(tt.category, tt.key)
			if err != nil {
				t.Fatalf("LatestSnapshot() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("LatestSnapshot() ok = %v; want %v", ok, tt.wantOK)
			}
			if ok && string(got.Payload) != tt.wantPayload {
				t.Fatalf("payload = %s; want %s", got.Payload, tt.wantPayload)
			}
		})
	}

	got, _, _ := db.LatestSnapshot(models.CategoryStats, "")
	if !got.FetchedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("FetchedAt = %v; want %v", got.FetchedAt, base.Add(time.Minute))
	}
}

func TestSQLiteCleanupOldData(t *testing.T) {
	db := newTestSQLite(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	old := models.MSnapshot{Category: models.CategorySectors, Payload: []byte(`{}`), FetchedAt: now.AddDate(0, 0, -31)}
	fresh := models.MSnapshot{Category: models.CategoryDashboard, Payload: []byte(`{}`), FetchedAt: now.AddDate(0, 0, -1)}
	for _, s := range []models.MSnapshot{old, fresh} {
		if err := db.SaveSnapshot(s); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}

	if err := db.CleanupOldData(); err != nil {
		t.Fatalf("CleanupOldData() error = %v", err)
	}

	if _, ok, _ := db.LatestSnapshot(models.CategorySectors, ""); ok {
		t.Error("snapshot older than retention survived cleanup")
	}
	if _, ok, _ := db.LatestSnapshot(models.CategoryDashboard, ""); !ok {
		t.Error("snapshot within retention was removed")
	}
}

func TestNewDatabase(t *testing.T) {
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "mysql"}}
	_, err := NewDatabase(cfg, testLogger())

	var cfgErr *helpers.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewDatabase(mysql) error = %v; want *helpers.ConfigurationError", err)
	}

	cfg.Storage.DBType = "sqlite"
	db, err := NewDatabase(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewDatabase(sqlite) error = %v", err)
	}
	if _, ok := db.(*SQLiteDB); !ok {
		t.Fatalf("NewDatabase(sqlite) = %T; want *SQLiteDB", db)
	}
}

// -----------------------------------------------------------------------------

func TestArchiverWritesSuccessEvents(t *testing.T) {
	db := newTestSQLite(t)
	a := NewArchiver(db, testLogger(), 8)

	at := time.Now().UTC().Truncate(time.Millisecond)
	a.Listen(models.MStoreEvent{Category: models.CategoryStats, Kind: models.EventLoading, At: at})
	a.Listen(models.MStoreEvent{Category: models.CategoryStats, Kind: models.EventFailure, Message: "boom", At: at})
	a.Listen(models.MStoreEvent{
		Category: models.CategoryStats,
		Kind:     models.EventSuccess,
		Payload:  models.MStats{Stocks: 2500},
		At:       at,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Run(ctx)

	snap, ok, err := db.LatestSnapshot(models.CategoryStats, "")
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot() = %v, %v", ok, err)
	}

	var stats models.MStats
	if err := json.Unmarshal(snap.Payload, &stats); err != nil {
		t.Fatalf("payload is not MStats: %v", err)
	}
	if stats.Stocks != 2500 {
		t.Errorf("archived stocks = %d; want 2500", stats.Stocks)
	}
	if !snap.FetchedAt.Equal(at) {
		t.Errorf("FetchedAt = %v; want %v", snap.FetchedAt, at)
	}
}

func TestArchiverDropsOnFullQueue(t *testing.T) {
	db := newTestSQLite(t)
	a := NewArchiver(db, testLogger(), 1)

	ev := models.MStoreEvent{Category: models.CategorySectors, Kind: models.EventSuccess, Payload: models.MSectorList{}}
	a.Listen(ev)
	a.Listen(ev)

	if got := a.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d; want 1", got)
	}
}

// -----------------------------------------------------------------------------

func TestPostgresLatestSnapshot(t *testing.T) {
	dsn := os.Getenv("K_STOCK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("K_STOCK_TEST_POSTGRES_DSN not set")
	}

	cfg := &models.MConfig{Storage: models.MStorageConfig{
		Enabled:            true,
		DBType:             "postgres",
		DBConnectionString: dsn,
		RetentionDays:      30,
	}}
	db, err := NewPostgresDB(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewPostgresDB() error = %v", err)
	}
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer db.Close()

	key := "test-" + time.Now().Format("150405.000000")
	snap := models.MSnapshot{Category: models.CategoryStock, Key: key, Payload: []byte(`{"ok":true}`), FetchedAt: time.Now()}
	if err := db.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	got, ok, err := db.LatestSnapshot(models.CategoryStock, key)
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot() = %v, %v", ok, err)
	}
	if string(got.Payload) != `{"ok":true}` {
		t.Errorf("payload = %s", got.Payload)
	}
}
