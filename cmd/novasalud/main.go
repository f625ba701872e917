package main

import (
	"context"
	"log/slog"
	"os"

	"novasalud/config"
	"novasalud/internal/delivery"
	"novasalud/internal/delivery/http"
	"novasalud/internal/delivery/http/middleware"
	"novasalud/internal/delivery/http/router/handler"
	"novasalud/internal/domain/service"
	"novasalud/internal/errors"
	"novasalud/internal/infra/auth"
	logs "novasalud/internal/infra/log"
	"novasalud/internal/infra/notification"
	"novasalud/internal/infra/persistence"
	"novasalud/internal/infra/persistence/memory"
	"novasalud/internal/infra/pubsub"
	"novasalud/internal/infra/qrcode"
	"novasalud/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	// Store is requested so its snapshot Load hook is registered before the serve hook.
	Store      *memory.Store
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
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
		persistence.NewSnapshotStore,
		memory.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewProductRepository,
			memory.NewCustomerRepository,
			memory.NewSaleRepository,
			memory.NewNotificationRepository,
			memory.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			pubsub.NewEventPublisher,
			newPushService,
			newLabelService,
		),
	)
}

// newPushService creates the Firebase push service, or a logging no-op when Firebase is not configured
func newPushService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushService, error) {
	if cfg.Firebase == nil {
		return notification.NewNoopPushService(logger), nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase service")
	}

	return svc, nil
}

// newLabelService creates the QR label renderer
func newLabelService(cfg *config.Config) service.LabelService {
	if cfg.Label == nil {
		return qrcode.NewLabelService(256, "M")
	}

	return qrcode.NewLabelService(cfg.Label.Size, cfg.Label.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProductService,
			impl.NewCustomerService,
			impl.NewSaleService,
			impl.NewNotificationService,
			impl.NewDashboardService,
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewCustomerHandler,
			handler.NewSaleHandler,
			handler.NewNotificationHandler,
			handler.NewDashboardHandler,
			handler.NewSessionHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer begins serving from an OnStart hook so no request is accepted before the store has loaded.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
