package main

import (
	"context"
	"log/slog"
	"os"

	"wellness/config"
	"wellness/internal/delivery"
	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/worker"
	"wellness/internal/delivery/worker/handler"
	"wellness/internal/infra/cache"
	logs "wellness/internal/infra/log"
	"wellness/internal/infra/metrics"
	"wellness/internal/infra/persistence/postgres"

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
		postgres.New,
		metrics.NewRegistry,
		cache.NewFromConfig,
		middleware.NewMetricsMiddleware,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewLedgerRepository,
		),
	)
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
