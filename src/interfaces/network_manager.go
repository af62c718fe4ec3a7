package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for HTTP GET requests against the backend.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to path (relative to the base URL) with
	// query parameters passed through verbatim.
	// Returns the response body as bytes or an error.
	Get(ctx context.Context, path string, params map[string]string) ([]byte, error)
}
