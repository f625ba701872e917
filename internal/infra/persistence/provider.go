// Package persistence selects the snapshot backend the in-memory store writes through to.
package persistence

import (
	"context"
	"log/slog"

	"novasalud/config"
	"novasalud/internal/domain/constants"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
	"novasalud/internal/infra/persistence/blob"
	"novasalud/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// SnapshotParams holds dependencies for the SnapshotStore, injected by Fx
type SnapshotParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewSnapshotStore creates a SnapshotStore based on configuration
func NewSnapshotStore(params SnapshotParams) (repository.SnapshotStore, error) {
	cfg := params.Config.Snapshot
	logger := params.Logger

	var (
		store repository.SnapshotStore
		err   error
	)

	switch cfg.Driver {
	case "", constants.SnapshotDriverBlob:
		logger.Info("Using blob snapshot store",
			slog.String("bucket_url", cfg.BucketURL),
			slog.String("key", cfg.Key),
		)

		store, err = blob.Open(params.Ctx, cfg.BucketURL, cfg.Key)
		if err != nil {
			return nil, err
		}

	case constants.SnapshotDriverPostgres:
		logger.Info("Using postgres snapshot store", slog.String("key", cfg.Key))

		db, dbErr := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
		})
		if dbErr != nil {
			return nil, dbErr
		}

		store, err = postgres.NewSnapshotStore(params.Ctx, db, cfg.Key)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown snapshot driver: %s", cfg.Driver)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing snapshot store")

			return store.Close()
		},
	})

	return store, nil
}
