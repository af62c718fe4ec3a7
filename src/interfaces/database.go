package interfaces

import "k-stock-insight/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the snapshot archive.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the connection and creates missing tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveSnapshot stores one successful payload.
	SaveSnapshot(snapshot models.MSnapshot) error

	// -----------------------------------------------------------------------------

	// LatestSnapshot returns the newest payload of a category and key.
	// ok is false when nothing was archived yet.
	LatestSnapshot(category models.MCategory, key string) (snapshot models.MSnapshot, ok bool, err error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes data older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
