package repository

import (
	"context"

	"novasalud/internal/domain/service"
)

// EventArchive keeps an append-only record of published store events.
type EventArchive interface {
	// Append stores the event under messageID. Appending the same messageID twice overwrites the first copy.
	Append(ctx context.Context, messageID string, event *service.StoreEvent) error

	// Close releases resources held by the archive.
	Close() error
}
