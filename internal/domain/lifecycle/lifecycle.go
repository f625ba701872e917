// Package lifecycle holds shared start/stop settings.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks such as snapshot loading and server shutdown.
const DefaultTimeout = 15 * time.Second
