package main

import (
	"context"
	"log/slog"
	"os"

	"novasalud/config"
	"novasalud/internal/delivery"
	"novasalud/internal/delivery/worker"
	"novasalud/internal/delivery/worker/handler"
	"novasalud/internal/domain/repository"
	logs "novasalud/internal/infra/log"
	"novasalud/internal/infra/persistence/blob"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newEventArchive,
		),
	)
}

// newEventArchive opens the archive bucket and closes it on shutdown
func newEventArchive(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.EventArchive, error) {
	logger.Info("Opening event archive",
		slog.String("bucket_url", cfg.Worker.ArchiveBucketURL),
		slog.String("prefix", cfg.Worker.ArchivePrefix),
	)

	archive, err := blob.OpenEventArchive(ctx, cfg.Worker.ArchiveBucketURL, cfg.Worker.ArchivePrefix)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return archive.Close()
		},
	})

	return archive, nil
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))

						// Trigger graceful shutdown to execute all OnStop hooks
						if shutdownErr := params.Shutdown(); shutdownErr != nil {
							slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
							os.Exit(1)
						}
					}
				}()
			}

			return nil
		},
	})
}
