package repository

import (
	"context"
	"errors"

	"novasalud/internal/domain/entity"
)

// ErrSnapshotNotFound is returned when no snapshot has been saved yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore loads and saves the whole state tree as one blob.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or ErrSnapshotNotFound.
	Load(ctx context.Context) (*entity.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot *entity.Snapshot) error

	// Close releases resources held by the store.
	Close() error
}
