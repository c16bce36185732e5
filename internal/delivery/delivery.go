// Package delivery defines the contract every transport front-end fulfils.
package delivery

import "context"

// Delivery is a long-running transport surface (e.g. the HTTP server).
// Serve blocks until the server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
