package main

import (
	"context"
	"log/slog"
	"os"

	"logbid/config"
	"logbid/internal/delivery"
	"logbid/internal/delivery/feed"
	feedhandler "logbid/internal/delivery/feed/handler"
	"logbid/internal/delivery/feed/hub"
	"logbid/internal/delivery/http"
	"logbid/internal/delivery/http/middleware"
	"logbid/internal/delivery/http/router/handler"
	"logbid/internal/infra/auth"
	logs "logbid/internal/infra/log"
	"logbid/internal/infra/mailer"
	"logbid/internal/infra/persistence/postgres"
	"logbid/internal/infra/pubsub"
	"logbid/internal/usecase/impl"

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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewShipmentRepository,
			postgres.NewOfferRepository,
			postgres.NewNotificationRepository,
			postgres.NewProfileRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewJWTService,
			mailer.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewNotificationDispatcher,
			impl.NewBidService,
			impl.NewOfferService,
			impl.NewFeedService,
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
			handler.NewShipmentHandler,
			handler.NewOfferHandler,
			handler.NewNotificationHandler,
			hub.NewHub,
			feedhandler.NewPushHandler,
			feedhandler.NewWSHandler,
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
			fx.Annotate(
				feed.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
