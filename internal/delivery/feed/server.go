// Package feed hosts the realtime notification feed server: a pubsub push
// endpoint feeding a websocket hub of connected clients.
package feed

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"logbid/config"
	"logbid/internal/delivery"
	"logbid/internal/delivery/feed/handler"
	"logbid/internal/delivery/feed/hub"
	"logbid/internal/delivery/middleware"
	"logbid/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type feedServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
	hub    *hub.Hub
}

// ServerParams holds dependencies for the feed server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Hub         *hub.Hub
	PushHandler *handler.PushHandler
	WSHandler   *handler.WSHandler
}

// NewServer creates the realtime feed HTTP server. It hosts the pubsub push
// endpoint and the websocket upgrade endpoint on the feed port.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())

	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	e.Use(requestIDMiddleware.Process)

	loggerMiddleware := middleware.NewLoggerMiddleware(params.Logger, params.Cfg)
	e.Use(loggerMiddleware.Handle)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Pub/Sub push endpoint
	e.POST("/push", params.PushHandler.HandlePush)

	// Client-facing websocket endpoint
	e.GET("/ws", params.WSHandler.HandleWS)

	srv := &feedServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: e,
		hub:    params.Hub,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts the feed HTTP server
func (s *feedServer) Serve(ctx context.Context) error {
	port := 0
	if s.cfg.Feed != nil {
		port = s.cfg.Feed.Port
	}
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(port))
	s.logger.Info("Starting Feed HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// stop gracefully shuts down the feed server and drops connected clients
func (s *feedServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down Feed HTTP server")
	s.hub.Close()

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
