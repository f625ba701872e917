// Package delivery defines the transports that expose the store.
package delivery

import "context"

// Delivery is a long-running transport started once the application has been wired.
type Delivery interface {
	Serve(ctx context.Context) error
}
