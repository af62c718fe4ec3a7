package storage

import (
	"database/sql"
	"fmt"
	"time"

	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
	now    func() time.Time
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
		now:    time.Now,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return databaseError("open sqlite", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return databaseError("ping sqlite", err)
	}

	// single writer; also keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)
	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			item_key TEXT NOT NULL DEFAULT '',
			payload BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshots: %w", err)
	}

	query = `
		CREATE INDEX IF NOT EXISTS idx_snapshots_lookup
		ON snapshots (category, item_key, fetched_at);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshots index: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveSnapshot(s models.MSnapshot) error {
	fetchedAt := s.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = d.now()
	}

	_, err := d.DB.Exec(`
		INSERT INTO snapshots (category, item_key, payload, fetched_at)
		VALUES (?, ?, ?, ?)
	`, string(s.Category), s.Key, s.Payload, fetchedAt.UnixMilli())
	if err != nil {
		return databaseError("save snapshot "+string(s.Category), err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) LatestSnapshot(category models.MCategory, key string) (models.MSnapshot, bool, error) {
	row := d.DB.QueryRow(`
		SELECT payload, fetched_at FROM snapshots
		WHERE category = ? AND item_key = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, string(category), key)

	return scanSnapshot(row, category, key)
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := d.now().UTC().AddDate(0, 0, -retentionDays).UnixMilli()

	res, err := d.DB.Exec("DELETE FROM snapshots WHERE fetched_at < ?", cutoff)
	if err != nil {
		d.Logger.Error("Cleanup snapshots error: %v", err)
		return databaseError("cleanup snapshots", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		d.Logger.Info("Cleanup removed %d snapshots older than %d days", n, retentionDays)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
