package interfaces

import "k-stock-insight/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the contract for pushing store state to external listeners.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Publish queues a fresh state for every connected listener. It is
	// registered as a store listener and must not block.
	Publish(ev models.MStoreEvent)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
