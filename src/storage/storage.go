// Package storage archives successful store payloads in SQLite or PostgreSQL.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
)

// -----------------------------------------------------------------------------

// NewDatabase builds the archive selected by cfg.Storage.DBType. The returned
// database is not initialized yet.
func NewDatabase(cfg *models.MConfig, log *logger.Logger) (interfaces.IDatabase, error) {
	switch cfg.Storage.DBType {
	case "postgres":
		return NewPostgresDB(cfg, log.Named("PostgresDB"))
	case "sqlite", "":
		return NewSQLiteDB(cfg, log.Named("SQLiteDB"))
	default:
		return nil, &helpers.ConfigurationError{KStockError: helpers.KStockError{
			Message: fmt.Sprintf("unsupported db_type %q", cfg.Storage.DBType),
		}}
	}
}

// -----------------------------------------------------------------------------

func scanSnapshot(row *sql.Row, category models.MCategory, key string) (models.MSnapshot, bool, error) {
	var (
		payload   []byte
		fetchedAt int64
	)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MSnapshot{}, false, nil
		}
		return models.MSnapshot{}, false, databaseError("read snapshot "+string(category), err)
	}

	return models.MSnapshot{
		Category:  category,
		Key:       key,
		Payload:   payload,
		FetchedAt: time.UnixMilli(fetchedAt).UTC(),
	}, true, nil
}

func databaseError(op string, err error) error {
	return &helpers.DatabaseError{KStockError: helpers.KStockError{Message: op, Cause: err}}
}
