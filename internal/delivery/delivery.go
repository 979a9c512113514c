// Package delivery defines the contract of the process's inbound servers.
package delivery

import "context"

// Delivery is a server started by the fx application once the graph is built.
type Delivery interface {
	Serve(ctx context.Context) error
}
