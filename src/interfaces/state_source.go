package interfaces

import (
	"context"

	"k-stock-insight/src/models"
)

// -----------------------------------------------------------------------------
// IStateSource is the read/refresh surface of the API store used by the
// relay server and the control service.
// -----------------------------------------------------------------------------

type IStateSource interface {

	// Snapshot returns a copy of the current store state.
	Snapshot() models.MStoreState

	// -----------------------------------------------------------------------------

	// RefreshAll runs the health check then the stats fetch.
	RefreshAll(ctx context.Context) bool

	// -----------------------------------------------------------------------------

	// ClearError nulls the named error slots, or all of them when none is given.
	ClearError(categories ...models.MCategory)

	// -----------------------------------------------------------------------------

	// AddListener registers fn to be called after every state change.
	AddListener(fn func(models.MStoreEvent))
}
