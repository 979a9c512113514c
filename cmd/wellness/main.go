package main

import (
	"context"
	"log/slog"
	"os"

	"wellness/config"
	"wellness/internal/delivery"
	"wellness/internal/delivery/http"
	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/router/handler"
	"wellness/internal/domain/service"
	"wellness/internal/infra/auth"
	"wellness/internal/infra/auth/google"
	"wellness/internal/infra/cache"
	logs "wellness/internal/infra/log"
	"wellness/internal/infra/metrics"
	"wellness/internal/infra/persistence/migrations"
	"wellness/internal/infra/persistence/postgres"
	"wellness/internal/infra/pubsub"
	"wellness/internal/infra/qrcode"
	"wellness/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

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
			migrations.Register,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			fx.Annotate(
				metrics.NewRegistry,
				fx.As(fx.Self()),
				fx.As(new(service.LedgerMetrics)),
			),
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewMembershipRepository,
			postgres.NewLedgerRepository,
			postgres.NewWelcomeGiftRepository,
			postgres.NewEventRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			google.NewAuthService,
			qrcode.NewFromConfig,
			cache.NewFromConfig,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewMembershipService,
			impl.NewWalletService,
			impl.NewEventService,
			impl.NewGiftService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewMetricsMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewMembershipHandler,
			handler.NewWalletHandler,
			handler.NewEventHandler,
			handler.NewGiftHandler,
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

// startServer launches every delivery once the earlier start hooks, migrations included, have run.
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
