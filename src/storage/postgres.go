package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
	now    func() time.Time
}

// -----------------------------------------------------------------------------

// NewPostgresDB keeps its tables in a schema named after the running
// executable, so several binaries can share one database.
func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
		now:    time.Now,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return databaseError("open postgres", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return databaseError("ping postgres", err)
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) table() string {
	return fmt.Sprintf(`"%s"."snapshots"`, d.Schema)
}

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			category TEXT NOT NULL,
			item_key TEXT NOT NULL DEFAULT '',
			payload BYTEA NOT NULL,
			fetched_at BIGINT NOT NULL
		);
	`, d.table())
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.table(), err)
	}

	query = fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_lookup
		ON %s (category, item_key, fetched_at);
	`, d.table())
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", d.table(), err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveSnapshot(s models.MSnapshot) error {
	fetchedAt := s.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = d.now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (category, item_key, payload, fetched_at)
		VALUES ($1, $2, $3, $4)
	`, d.table())
	if _, err := d.DB.Exec(query, string(s.Category), s.Key, s.Payload, fetchedAt.UnixMilli()); err != nil {
		return databaseError("save snapshot "+string(s.Category), err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) LatestSnapshot(category models.MCategory, key string) (models.MSnapshot, bool, error) {
	query := fmt.Sprintf(`
		SELECT payload, fetched_at FROM %s
		WHERE category = $1 AND item_key = $2
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, d.table())

	return scanSnapshot(d.DB.QueryRow(query, string(category), key), category, key)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := d.now().UTC().AddDate(0, 0, -retentionDays).UnixMilli()

	res, err := d.DB.Exec(fmt.Sprintf(`DELETE FROM %s WHERE fetched_at < $1`, d.table()), cutoff)
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

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
