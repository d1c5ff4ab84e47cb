// Package delivery defines the contract every transport entry point
// implements, letting main run HTTP and feed servers uniformly.
package delivery

import "context"

// Delivery is a serving transport. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
